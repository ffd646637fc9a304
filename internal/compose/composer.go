package compose

import (
	"fmt"
	"log/slog"

	"ap-scout-web/internal/domain"
	"ap-scout-web/internal/store"
)

// ConfigComposer はドメインキーからパイプラインが消費する正準形の
// ScoutConfig を組み立てます。状態を持たず、ストアが変化しない限り
// 同じ入力に対して常に同じ設定を返します。
type ConfigComposer struct {
	store      *store.DomainConfigStore
	defaultKey string
}

// New は ConfigComposer を生成します。defaultKey は深掘り再解決が
// ストアミスとなった場合のフォールバック先です。
func New(s *store.DomainConfigStore, defaultKey string) *ConfigComposer {
	return &ConfigComposer{store: s, defaultKey: defaultKey}
}

// FromStored はストア上のドメイン設定ファイルを正準形に変換します。
func FromStored(key string, df domain.DomainFile) domain.ScoutConfig {
	return domain.ScoutConfig{
		DomainKey:     key,
		DomainLabel:   df.Domain,
		SourceURL:     df.Sources[0].URL,
		DiscoveryGoal: df.ScoutingLogic.DiscoveryGoal,
		FocusPoints:   df.ScoutingLogic.FocusPoints,
		Accent: domain.UIAccent{
			ColorCode: df.UIDisplay.ColorCode,
			Icon:      df.UIDisplay.Icon,
		},
	}
}

// ResolveDomain はドメインキーを設定に解決します。未知のキーはエラーに
// せず、既定ドメインに差し替えます。ユーザーはすでに一度待っているため、
// 深掘りをここで失敗させることはありません。
func (c *ConfigComposer) ResolveDomain(key string) (domain.ScoutConfig, error) {
	if df, ok := c.store.Get(key); ok {
		return FromStored(key, df), nil
	}

	slog.Warn("未知のドメインキーのため既定ドメインへフォールバックします",
		"requested_key", key,
		"default_key", c.defaultKey,
	)

	df, ok := c.store.Get(c.defaultKey)
	if !ok {
		// 起動時バリデーションで既定ドメインの存在を保証しているため、
		// 通常ここには到達しません。
		return domain.ScoutConfig{}, fmt.Errorf("既定ドメイン設定が見つかりません: %s", c.defaultKey)
	}
	return FromStored(c.defaultKey, df), nil
}

// ValidateDefault は既定ドメインがストアに存在することを確認します。
// 起動時に呼び出すことで、実行時の ResolveDomain を失敗させない契約を守ります。
func (c *ConfigComposer) ValidateDefault() error {
	if _, ok := c.store.Get(c.defaultKey); !ok {
		return fmt.Errorf("既定ドメイン '%s' がドメイン設定ストアに存在しません", c.defaultKey)
	}
	return nil
}
