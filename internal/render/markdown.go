package render

import (
	"strings"

	"ap-scout-web/internal/domain"
)

// summarySection は分解途中の (見出し, 本文) ペアです。
type summarySection struct {
	heading string
	body    string
}

// emphasisReplacer は強調マークアップ (太字・斜体) の記号だけを除去します。
// 囲まれたテキスト自体は保持されます。
var emphasisReplacer = strings.NewReplacer("**", "", "__", "", "*", "")

func stripEmphasis(s string) string {
	return emphasisReplacer.Replace(s)
}

// stripHeadings は見出しマーカーを行頭から取り除きます。フォールバック
// ブロック用の整形であり、行の本文は保持します。
func stripHeadings(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "#")
		if trimmed != line {
			lines[i] = strings.TrimSpace(trimmed)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// cleanRawText はフォールバックブロックに入れる生テキストを整形します。
func cleanRawText(s string) string {
	return stripHeadings(stripEmphasis(s))
}

// extractTitle は最初のレベル2見出し行からタイトルを抽出し、
// 残りのテキストとともに返します。見出しが無い場合タイトルは空です。
func extractTitle(text string) (title string, rest []string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") && !strings.HasPrefix(trimmed, "###") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
			return title, append(append([]string{}, lines[:i]...), lines[i+1:]...)
		}
	}
	return "", lines
}

// splitSections はレベル3見出しで本文を分割します。
// 最初のレベル3見出しより前のテキストは破棄します。
func splitSections(lines []string) []summarySection {
	var sections []summarySection
	var current *summarySection

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "### ") {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &summarySection{heading: strings.TrimSpace(strings.TrimPrefix(trimmed, "### "))}
			continue
		}
		if current == nil {
			continue // 最初の見出しより前は破棄
		}
		current.body += line + "\n"
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

// extractBullets は本文から箇条書きを抽出します。
// "- " で始まる行があればそれをそのまま採用し、無ければ文末句読点
// （全角の句点と半角ピリオドの両方）で散文を短い断片に分割します。
func extractBullets(body string) []string {
	cleaned := stripEmphasis(body)

	var bullets []string
	for _, line := range strings.Split(cleaned, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			bullets = append(bullets, strings.TrimSpace(strings.TrimPrefix(trimmed, "- ")))
		}
	}
	if len(bullets) > 0 {
		return bullets
	}

	for _, frag := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == '。' || r == '.'
	}) {
		if trimmed := strings.TrimSpace(frag); trimmed != "" {
			bullets = append(bullets, trimmed)
		}
	}
	return bullets
}

// decomposeSummary はエージェントの要約テキストを決定的に分解します。
// このアルゴリズムは全域的です。不正な入力で失敗することはなく、
// 生テキストのフォールバックへ向かって縮退するだけです。
func decomposeSummary(text string) (title string, blocks []domain.DocumentBlock) {
	title, rest := extractTitle(text)

	for _, sec := range splitSections(rest) {
		bullets := extractBullets(sec.body)
		if len(bullets) == 0 {
			continue // 空のセクションはドキュメントから除外
		}
		blocks = append(blocks, domain.DocumentBlock{
			Type:    domain.BlockSection,
			Heading: sec.heading,
			Bullets: bullets,
		})
	}

	if len(blocks) == 0 {
		blocks = append(blocks, domain.DocumentBlock{
			Type: domain.BlockText,
			Text: cleanRawText(text),
		})
	}
	return title, blocks
}
