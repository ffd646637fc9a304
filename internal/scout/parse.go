package scout

import (
	"encoding/json"
	"strings"

	"ap-scout-web/internal/domain"
)

// looseArticle は別名キー (name/link) を許容する寛容な受け口です。
// 出力制約を無視するエージェントへの対策で、欠落フィールドの既定値の
// 充填はレンダラー側で行います。
type looseArticle struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Link  string `json:"link"`
}

// parseArticleList は生出力をJSON配列として解釈を試みます。
// 解釈できた場合は正規化済みの記事リストと true を返します。
func parseArticleList(raw string) ([]domain.ArticleRef, bool) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var items []looseArticle
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, false
	}

	refs := make([]domain.ArticleRef, 0, len(items))
	for _, it := range items {
		title := it.Title
		if title == "" {
			title = it.Name
		}
		u := it.URL
		if u == "" {
			u = it.Link
		}
		refs = append(refs, domain.ArticleRef{Title: title, URL: u})
	}
	return refs, true
}

// stripCodeFence はエージェントがJSONをコードフェンスで包んで返した場合に
// フェンス行を取り除きます。
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}

	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
