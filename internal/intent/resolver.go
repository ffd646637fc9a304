package intent

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"ap-scout-web/internal/compose"
	"ap-scout-web/internal/domain"
	"ap-scout-web/internal/store"
)

const (
	// arxivSearchTemplate は合成設定の探索起点となる固定の検索エンドポイントです。
	arxivSearchTemplate = "https://arxiv.org/search/?searchtype=all&query=%s"

	defaultTopic = "AI research"

	synthesizedColorCode = "#7B61FF"
	synthesizedIcon      = "🔬"
)

// defaultFocusPoints は合成設定に与える汎用の分析観点です。
var defaultFocusPoints = []string{
	"Core technical contribution",
	"Problem being solved",
	"Key results or findings",
}

// IntentResolver は自由形式のメッセージを ScoutConfig に解決します。
// 分類サービスの失敗は決してエラーとして伝播させず、「リクエストではない」
// として安全側に縮退します。
type IntentResolver struct {
	classifier Classifier
	store      *store.DomainConfigStore
}

// NewResolver は IntentResolver を生成します。
func NewResolver(classifier Classifier, s *store.DomainConfigStore) *IntentResolver {
	return &IntentResolver{classifier: classifier, store: s}
}

// Resolve はユーザーテキストを分類し、設定へ解決します。
// 戻り値が nil の場合はスカウトリクエストではない（ヘルプ経路）ことを意味します。
func (r *IntentResolver) Resolve(ctx context.Context, text string) *domain.ScoutConfig {
	cls, err := r.classifier.Classify(ctx, text, r.store.Keys())
	if err != nil {
		slog.WarnContext(ctx, "意図分類に失敗したためヘルプ経路へ縮退します", "error", err)
		return nil
	}

	if !cls.IsScoutRequest {
		return nil
	}

	// 既知ドメインに一致した場合はストア上の設定を採用します。
	if cls.MatchedDomain != "" {
		if df, ok := r.store.Get(cls.MatchedDomain); ok {
			cfg := compose.FromStored(cls.MatchedDomain, df)
			return &cfg
		}
		slog.WarnContext(ctx, "分類器が未知のドメインキーを返しました", "matched_domain", cls.MatchedDomain)
	}

	cfg := synthesize(cls)
	return &cfg
}

// synthesize は分類結果から arXiv 検索向けのアドホック設定を構築します。
func synthesize(cls Classification) domain.ScoutConfig {
	topic := cls.Topic
	if topic == "" {
		topic = defaultTopic
	}

	searchQuery := cls.SearchQuery
	if searchQuery == "" {
		searchQuery = fmt.Sprintf("Recent papers about %s.", topic)
	}

	return domain.ScoutConfig{
		DomainKey:     domain.SynthesizedKeyPrefix + topic,
		DomainLabel:   topic,
		SourceURL:     fmt.Sprintf(arxivSearchTemplate, url.QueryEscape(topic)),
		DiscoveryGoal: searchQuery,
		FocusPoints:   defaultFocusPoints,
		Accent: domain.UIAccent{
			ColorCode: synthesizedColorCode,
			Icon:      synthesizedIcon,
		},
	}
}
