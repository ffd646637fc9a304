package render

import (
	"fmt"
	"strings"
	"testing"

	"ap-scout-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDiscoveryStructured(t *testing.T) {
	r := New()
	res := domain.StructuredResult([]domain.ArticleRef{
		{Title: "Paper A", URL: "https://arxiv.org/abs/2602.00001"},
		{Title: "Paper B", URL: "https://arxiv.org/abs/2602.00002"},
		{Title: "Paper C", URL: "https://arxiv.org/abs/2602.00003"},
	})

	doc := r.RenderDiscovery("AIOps", res, "aiops")

	assert.Equal(t, "🔍 AIOps Report", doc.Title)
	require.Len(t, doc.Blocks, 3)
	// 入力順が保持されること
	for i, want := range []string{"Paper A", "Paper B", "Paper C"} {
		assert.Equal(t, domain.BlockLink, doc.Blocks[i].Type)
		assert.Equal(t, want, doc.Blocks[i].Title)
	}

	action, err := domain.DecodeDeepDiveAction(doc.Blocks[0].ActionData)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSummarize, action.Action)
	assert.Equal(t, "aiops", action.DomainKey)
	assert.Equal(t, "https://arxiv.org/abs/2602.00001", action.URL)
}

func TestRenderDiscoveryFillsMissingFields(t *testing.T) {
	r := New()
	res := domain.StructuredResult([]domain.ArticleRef{
		{URL: "https://arxiv.org/abs/2602.00001"},
		{Title: "Paper B"},
	})

	doc := r.RenderDiscovery("AIOps", res, "aiops")

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, PlaceholderArticleTitle, doc.Blocks[0].Title)
	assert.Equal(t, DefaultLandingURL, doc.Blocks[1].URL)
}

func TestRenderDiscoveryZeroItems(t *testing.T) {
	doc := New().RenderDiscovery("AIOps", domain.StructuredResult(nil), "aiops")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockText, doc.Blocks[0].Type)
	assert.Equal(t, NoResultsText, doc.Blocks[0].Text)
}

func TestRenderDiscoveryEmpty(t *testing.T) {
	doc := New().RenderDiscovery("AIOps", domain.EmptyResult(), "aiops")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, NoResultsText, doc.Blocks[0].Text)
}

func TestRenderDiscoveryNarrative(t *testing.T) {
	doc := New().RenderDiscovery("AIOps", domain.NarrativeResult("**Found** some articles"), "aiops")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockText, doc.Blocks[0].Type)
	assert.Equal(t, "Found some articles", doc.Blocks[0].Text)
}

func TestRenderSummaryBasic(t *testing.T) {
	doc := New().RenderSummary(domain.NarrativeResult("## Paper X\n### 背景\n- 問題一\n- 問題二"))

	assert.Equal(t, "Paper X", doc.Title)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockSection, doc.Blocks[0].Type)
	assert.Equal(t, "背景", doc.Blocks[0].Heading)
	assert.Equal(t, []string{"問題一", "問題二"}, doc.Blocks[0].Bullets)
}

func TestRenderSummaryStripsEmphasis(t *testing.T) {
	doc := New().RenderSummary(domain.NarrativeResult("## Paper X\n### 方法\n- 使用**變分推斷**方法\n- 基於*擴散模型*"))

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, []string{"使用變分推斷方法", "基於擴散模型"}, doc.Blocks[0].Bullets)
}

func TestRenderSummarySentenceSplitFallback(t *testing.T) {
	doc := New().RenderSummary(domain.NarrativeResult("## Paper X\n### 貢獻\n提出新架構。效果顯著提升。"))

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, []string{"提出新架構", "效果顯著提升"}, doc.Blocks[0].Bullets)
}

func TestRenderSummaryDropsEmptySections(t *testing.T) {
	doc := New().RenderSummary(domain.NarrativeResult("## Paper X\n### 背景\n- 問題一\n### 空段落\n\n### 結論\n- 結論一"))

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "背景", doc.Blocks[0].Heading)
	assert.Equal(t, "結論", doc.Blocks[1].Heading)
}

func TestRenderSummaryNoHeadingsFallback(t *testing.T) {
	doc := New().RenderSummary(domain.NarrativeResult("這篇論文提出了一個**新方法**，效果不錯。"))

	assert.Equal(t, PlaceholderSummaryTitle, doc.Title)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockText, doc.Blocks[0].Type)
	assert.Equal(t, "這篇論文提出了一個新方法，效果不錯。", doc.Blocks[0].Text)
}

func TestRenderSummaryPreambleDiscarded(t *testing.T) {
	doc := New().RenderSummary(domain.NarrativeResult("## Paper X\nここは前書きです。\n### 背景\n- 問題一"))

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "背景", doc.Blocks[0].Heading)
}

func TestRenderSummaryEmptyResult(t *testing.T) {
	doc := New().RenderSummary(domain.EmptyResult())

	assert.Equal(t, PlaceholderSummaryTitle, doc.Title)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, NoResultsText, doc.Blocks[0].Text)
}

// 整形済みの箇条書き出力を "- " 付きで再結合して再分解しても
// 同じ箇条書き集合が得られること（分解の冪等性）。
func TestDecompositionIdempotent(t *testing.T) {
	input := "## Paper X\n### 背景\n- 問題一\n- 問題二\n### 結論\n- 結論一"

	title, blocks := decomposeSummary(input)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n", title))
	for _, b := range blocks {
		sb.WriteString(fmt.Sprintf("### %s\n", b.Heading))
		for _, bullet := range b.Bullets {
			sb.WriteString(fmt.Sprintf("- %s\n", bullet))
		}
	}

	title2, blocks2 := decomposeSummary(sb.String())
	assert.Equal(t, title, title2)
	assert.Equal(t, blocks, blocks2)
}
