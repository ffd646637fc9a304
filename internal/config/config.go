package config

import (
	"os"
	"path"
	"time"
)

const (
	DefaultClassifierModel = "gemini-3-flash-preview"
	// DefaultAgentStepBudget 外部ブラウジングエージェントに許可する最大ステップ数
	DefaultAgentStepBudget = 10
	// DefaultHTTPTimeout エージェントのブラウジング実行を考慮したタイムアウト
	DefaultHTTPTimeout = 120 * time.Second
	DefaultDomainKey   = "aiops"
	DefaultConfigDir   = "domain_configs"
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL string
	Port       string

	// LINE Messaging API
	LineChannelSecret string
	LineChannelToken  string

	// 意図分類器 (Gemini)
	GeminiAPIKey    string
	ClassifierModel string

	// 外部ブラウジングエージェント
	AgentBridgeURL  string // browser-use ランナーサービスのエンドポイント
	AgentStepBudget int

	// ドメイン設定ストア
	DomainConfigDir  string
	DefaultDomainKey string // 深掘り再解決が失敗した際のフォールバック先

	// レポートアーカイブ (空文字列の場合アーカイブは無効)
	GCSBucket     string
	BaseOutputDir string // GCS内のベースルート (例: "reports")

	SlackWebhookURL string
	ShutdownTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	serviceURL := getEnv("SERVICE_URL", "http://localhost:8080")

	// 実行環境（Cloud Run, ko）に応じたパスの解決
	baseDir := "."
	if os.Getenv("KO_DATA_PATH") != "" || os.Getenv("K_SERVICE") != "" {
		baseDir = "/app"
	}

	return &Config{
		ServiceURL: serviceURL,
		Port:       getEnv("PORT", "8080"),

		LineChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
		LineChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		ClassifierModel: getEnv("CLASSIFIER_MODEL", DefaultClassifierModel),

		AgentBridgeURL:  getEnv("AGENT_BRIDGE_URL", "http://localhost:9000"),
		AgentStepBudget: getEnvInt("AGENT_STEP_BUDGET", DefaultAgentStepBudget),

		DomainConfigDir:  path.Join(baseDir, getEnv("DOMAIN_CONFIG_DIR", DefaultConfigDir)),
		DefaultDomainKey: getEnv("DEFAULT_DOMAIN_KEY", DefaultDomainKey),

		GCSBucket:     getEnv("GCS_REPORT_BUCKET", ""),
		BaseOutputDir: getEnv("BASE_OUTPUT_DIR", "reports"),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		ShutdownTimeout: 15 * time.Second,
	}
}
