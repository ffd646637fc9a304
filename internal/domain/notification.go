package domain

const CategoryNotAvailable = "N/A"

// NotificationRequest は Slack 等の運用通知コンポーネントで共有されるデータ構造です。
// スカウトタスクの実行メタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// SourceURL は、探索対象となったソースまたは記事のURLです。
	SourceURL string `json:"source_url"`

	// OutputCategory は、通知の種別です。(例: "scout-report", "error-report")
	OutputCategory string `json:"output_category"`

	// TargetTitle は、対象ドメインのラベルやレポートのタイトルです。
	TargetTitle string `json:"target_title"`

	// ExecutionMode は、実行されたコマンドとフェーズです。(例: "discover / aiops")
	ExecutionMode string `json:"execution_mode"`
}
