package scout

import (
	"fmt"
	"strings"

	"ap-scout-web/internal/domain"
)

// arXiv の一覧・検索ページは常に ID (例: 2602.12345) を表示するため、
// リンクを辿らせる代わりに ID から URL を直接組み立てさせます。
// エージェントの不要なナビゲーションステップを削減するための措置です。
const arxivURLHint = "IMPORTANT: Every article shows an arXiv ID (e.g. '2602.12345'). " +
	"Construct each article URL as 'https://arxiv.org/abs/{arxiv_id}'. " +
	"Do NOT click any article - construct URLs directly from the IDs you see."

const genericURLHint = "For each article, extract its full absolute URL. " +
	"If the page shows relative URLs, prepend the domain to make them absolute."

// buildDiscoveryInstruction は発見フェーズのタスク指示文を組み立てます。
func buildDiscoveryInstruction(cfg domain.ScoutConfig) string {
	urlHint := genericURLHint
	if strings.Contains(cfg.SourceURL, "arxiv.org") {
		urlHint = arxivURLHint
	}

	return fmt.Sprintf(
		"Go to %s. "+
			"Look for any articles related to: %s. "+
			"If you find matching articles, extract up to 5. "+
			"If no direct matches, extract the first 3 articles listed. "+
			"%s "+
			"Return ONLY a JSON list where each item has keys 'title' and 'url'. No extra text.",
		cfg.SourceURL, cfg.DiscoveryGoal, urlHint,
	)
}

// buildSummaryInstruction は深掘り要約フェーズのタスク指示文を組み立てます。
// 出力文法を厳密に指定し、レンダラーの分解アルゴリズムが扱える形へ誘導します。
func buildSummaryInstruction(cfg domain.ScoutConfig, targetURL string) string {
	focus := strings.Join(cfg.FocusPoints, ", ")

	return fmt.Sprintf(
		"Navigate to %s. Read the main content of this page. "+
			"Write a summary in Traditional Chinese focusing on: %s. "+
			"Format rules (MUST follow exactly):\n"+
			"1. Start with a ## title line (the paper name in English).\n"+
			"2. Add 2-4 sections using ### headings in Traditional Chinese.\n"+
			"3. Under each section, write 2-4 bullet points starting with '- '.\n"+
			"4. Each bullet point must be ONE short sentence (max 25 Chinese characters).\n"+
			"5. No paragraph text - bullets only under each section.",
		targetURL, focus,
	)
}
