package render

import (
	"fmt"

	"ap-scout-web/internal/domain"
)

const (
	// PlaceholderArticleTitle はタイトル欠落レコードに充填される既定値です。
	PlaceholderArticleTitle = "Untitled Article"
	// DefaultLandingURL はURL欠落レコードに充填される既定の着地ページです。
	DefaultLandingURL = "https://arxiv.org"
	// PlaceholderSummaryTitle は要約にレベル2見出しが無い場合の既定タイトルです。
	PlaceholderSummaryTitle = "Deep Dive Summary"

	// NoResultsText は利用可能な結果が無いことを伝える通知文です。
	// 実行失敗とは区別される「結果なし」の通知であり、文面も分けています。
	NoResultsText = "No results found. Please try again later."
)

// Renderer はオーケストレーターの正規化結果を表示用ドキュメントに変換します。
// 状態を持たないため並行して安全に使用できます。
type Renderer struct{}

// New は Renderer を生成します。
func New() *Renderer {
	return &Renderer{}
}

// RenderDiscovery は発見フェーズの結果をリンク一覧ドキュメントに変換します。
// 個々のレコードに欠けたフィールドは破棄せず既定値で充填します。
func (r *Renderer) RenderDiscovery(domainLabel string, res domain.AgentRunResult, domainKey string) domain.RenderedDocument {
	doc := domain.RenderedDocument{
		Title: fmt.Sprintf("🔍 %s Report", domainLabel),
	}

	switch res.Kind {
	case domain.ResultStructured:
		for _, art := range res.Articles {
			title := art.Title
			if title == "" {
				title = PlaceholderArticleTitle
			}
			u := art.URL
			if u == "" {
				u = DefaultLandingURL
			}
			doc.Blocks = append(doc.Blocks, domain.DocumentBlock{
				Type:       domain.BlockLink,
				Title:      title,
				URL:        u,
				ActionData: domain.NewSummarizeAction(domainKey, u).Encode(),
			})
		}
		if len(doc.Blocks) == 0 {
			doc.Blocks = append(doc.Blocks, noticeBlock())
		}

	case domain.ResultNarrative:
		// エージェントがJSON制約を無視した場合でも、得られたテキストは
		// そのまま1ブロックとして提示します。
		doc.Blocks = append(doc.Blocks, domain.DocumentBlock{
			Type: domain.BlockText,
			Text: cleanRawText(res.Text),
		})

	default:
		doc.Blocks = append(doc.Blocks, noticeBlock())
	}

	return doc
}

// RenderSummary は要約フェーズの結果をセクション構造のドキュメントに変換します。
func (r *Renderer) RenderSummary(res domain.AgentRunResult) domain.RenderedDocument {
	if res.Kind != domain.ResultNarrative {
		return domain.RenderedDocument{
			Title:  PlaceholderSummaryTitle,
			Blocks: []domain.DocumentBlock{noticeBlock()},
		}
	}

	title, blocks := decomposeSummary(res.Text)
	if title == "" {
		title = PlaceholderSummaryTitle
	}
	return domain.RenderedDocument{Title: title, Blocks: blocks}
}

func noticeBlock() domain.DocumentBlock {
	return domain.DocumentBlock{Type: domain.BlockText, Text: NoResultsText}
}
