package config

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/shouni/netarmor/securenet"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetReportDir は特定のタスクに対するレポート保存先パスを返します。
// 例: "reports/20260831-ABCD"
func (c Config) GetReportDir(taskID string) string {
	return path.Join(c.BaseOutputDir, taskID)
}

// GetGCSObjectURL は、指定されたパスから完全なGCSオブジェクトURL ("gs://...") を組み立てます。
// c.GCSBucketが空文字列の場合、この関数は引数で与えられたpathをそのまま返します。
func (c Config) GetGCSObjectURL(p string) string {
	if c.GCSBucket != "" {
		return fmt.Sprintf("gs://%s/%s", c.GCSBucket, p)
	}
	return p
}

// ArchiveEnabled はレポートアーカイブが構成されているかを返します。
func (c Config) ArchiveEnabled() bool {
	return c.GCSBucket != ""
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}

	if cfg.LineChannelSecret == "" || cfg.LineChannelToken == "" {
		return fmt.Errorf("configuration error: LINE channel settings are missing")
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("configuration error: GEMINI_API_KEY is not set")
	}

	if !IsSecureURL(cfg.AgentBridgeURL) {
		return fmt.Errorf("security error: AGENT_BRIDGE_URL ('%s') must be HTTPS in production", cfg.AgentBridgeURL)
	}

	if cfg.AgentStepBudget <= 0 {
		return fmt.Errorf("configuration error: AGENT_STEP_BUDGET must be positive")
	}

	if cfg.DefaultDomainKey == "" {
		return fmt.Errorf("configuration error: DEFAULT_DOMAIN_KEY is empty")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
