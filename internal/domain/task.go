package domain

const (
	// CommandDiscover は記事発見フェーズの実行を指示します。
	CommandDiscover = "discover"
	// CommandSummarize は単一URLの深掘り要約フェーズの実行を指示します。
	CommandSummarize = "summarize"
)

// ScoutTaskPayload は、バックグラウンドタスクに渡されるスカウト実行指示を表します。
type ScoutTaskPayload struct {
	// Command は実行するフェーズを指定します。("discover" / "summarize")
	Command string `json:"command"`
	// UserID は結果のプッシュ先となるチャットユーザーIDです。
	UserID string `json:"user_id"`
	// DomainKey は summarize 時の再解決に使うドメインキーです。
	DomainKey string `json:"domain_key"`
	// TargetURL は summarize 対象の記事URLです。(Summarizeモードで使用)
	TargetURL string `json:"target_url"`
	// Config は discover 時に解決済みの設定をそのまま持ち回ります。
	Config ScoutConfig `json:"config"`
}
