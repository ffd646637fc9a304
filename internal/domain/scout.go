package domain

// UIAccent は表示用のアクセント情報（カラーコードとアイコン）を保持します。
type UIAccent struct {
	ColorCode string `json:"color_code"`
	Icon      string `json:"icon"`
}

// ScoutConfig は1回のスカウトタスクを定義する正準形の設定です。
// ストアから読み込んだ定義、または意図分類から合成された定義のどちらも
// この形に正規化され、以降のパイプラインはこの形だけを扱います。
type ScoutConfig struct {
	// DomainKey は安定識別子です。既知ドメイン名、または "custom:<topic>" 形式。
	DomainKey string `json:"domain_key"`
	// DomainLabel は人間可読なトピック名です。
	DomainLabel string `json:"domain_label"`
	// SourceURL は探索の起点となる単一のURLです。
	SourceURL string `json:"source_url"`
	// DiscoveryGoal は記事発見フェーズを導く自然言語の目的文です。
	DiscoveryGoal string `json:"discovery_goal"`
	// FocusPoints は深掘り要約の観点リストです。要約に使う場合は空であってはなりません。
	FocusPoints []string `json:"focus_points"`
	// Accent は表示用のヒントです。
	Accent UIAccent `json:"accent"`
}

// IsSynthesized は意図分類から動的に合成された設定かどうかを返します。
func (c ScoutConfig) IsSynthesized() bool {
	return len(c.DomainKey) > len(SynthesizedKeyPrefix) && c.DomainKey[:len(SynthesizedKeyPrefix)] == SynthesizedKeyPrefix
}

// SynthesizedKeyPrefix は合成設定の DomainKey に付与されるプレフィックスです。
const SynthesizedKeyPrefix = "custom:"

// --- ドメイン設定ファイル（YAMLストア上の形） ---

// DomainSource はドメイン設定内の単一ソース定義です。
type DomainSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ScoutingLogic は発見・要約の振る舞いを定義します。
type ScoutingLogic struct {
	DiscoveryGoal string   `yaml:"discovery_goal"`
	SummaryDepth  string   `yaml:"summary_depth"`
	FocusPoints   []string `yaml:"focus_points"`
}

// UIDisplay はドメイン設定ファイル上の表示ヒントです。
type UIDisplay struct {
	ColorCode string `yaml:"color_code"`
	Icon      string `yaml:"icon"`
}

// DomainFile は domain_configs/*.yaml の1ファイルに対応します。
type DomainFile struct {
	Domain        string         `yaml:"domain"`
	Sources       []DomainSource `yaml:"sources"`
	ScoutingLogic ScoutingLogic  `yaml:"scouting_logic"`
	UIDisplay     UIDisplay      `yaml:"ui_display"`
}
