package domain

// BlockType は描画ドキュメント内のブロック種別です。
type BlockType int

const (
	// BlockLink は深掘りボタン付きの記事リンクです。
	BlockLink BlockType = iota
	// BlockSection は見出しと箇条書きのまとまりです。
	BlockSection
	// BlockText は生テキストのフォールバックや通知文です。
	BlockText
)

// DocumentBlock は RenderedDocument を構成する1ブロックです。
// Type に応じて使用するフィールドが決まります。
type DocumentBlock struct {
	Type BlockType

	// BlockLink 用
	Title      string
	URL        string
	ActionData string // エンコード済み DeepDiveAction トークン

	// BlockSection 用
	Heading string
	Bullets []string

	// BlockText 用
	Text string
}

// RenderedDocument は配信ゲートウェイに渡す表示用ドキュメントです。
// 不変条件: Blocks は必ず1件以上を含みます。分解が何も生まなかった場合、
// レンダラーが生テキストのフォールバックブロックを代わりに挿入します。
type RenderedDocument struct {
	Title       string
	AccentColor string
	Blocks      []DocumentBlock
}
