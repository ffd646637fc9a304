package domain

// ResultKind はエージェント実行結果のペイロード種別です。
type ResultKind int

const (
	// ResultEmpty はすべてのフォールバック経路からも何も回収できなかったことを示します。
	ResultEmpty ResultKind = iota
	// ResultStructured は {title, url} レコードのリストとして解釈できたことを示します。
	ResultStructured
	// ResultNarrative は自由形式テキストのままであることを示します。
	ResultNarrative
)

// String はログ出力用の種別名を返します。
func (k ResultKind) String() string {
	switch k {
	case ResultStructured:
		return "structured"
	case ResultNarrative:
		return "narrative"
	default:
		return "empty"
	}
}

// ArticleRef は発見フェーズが返す1件の記事参照です。
type ArticleRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AgentRunResult はオーケストレーターの1フェーズを正規化した結果です。
// Kind に応じて Articles か Text のどちらか一方だけが意味を持ちます。
type AgentRunResult struct {
	Kind     ResultKind
	Articles []ArticleRef
	Text     string
}

// EmptyResult は回収不能を表す結果を返します。
func EmptyResult() AgentRunResult {
	return AgentRunResult{Kind: ResultEmpty}
}

// StructuredResult は記事リスト結果を返します。
func StructuredResult(articles []ArticleRef) AgentRunResult {
	return AgentRunResult{Kind: ResultStructured, Articles: articles}
}

// NarrativeResult は自由形式テキスト結果を返します。
func NarrativeResult(text string) AgentRunResult {
	return AgentRunResult{Kind: ResultNarrative, Text: text}
}
