package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ap-scout-web/internal/domain"

	"gopkg.in/yaml.v3"
)

// DomainConfigStore は名前付きドメイン設定の読み取り専用ストアです。
// 起動時にディレクトリ内の *.yaml を一括で読み込み、以降は変更されないため
// ロックなしで並行アクセスできます。
type DomainConfigStore struct {
	entries map[string]domain.DomainFile
}

// Load は指定ディレクトリからすべてのドメイン設定を読み込みます。
// キーはファイル名の拡張子を除いた小文字形です。(例: aiops.yaml → "aiops")
func Load(dir string) (*DomainConfigStore, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ドメイン設定ディレクトリの読み込みに失敗しました (%s): %w", dir, err)
	}

	entries := make(map[string]domain.DomainFile)
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("ドメイン設定ファイルの読み込みに失敗しました (%s): %w", name, err)
		}

		var df domain.DomainFile
		if err := yaml.Unmarshal(data, &df); err != nil {
			return nil, fmt.Errorf("ドメイン設定ファイルの解析に失敗しました (%s): %w", name, err)
		}
		if df.Domain == "" || len(df.Sources) == 0 {
			return nil, fmt.Errorf("ドメイン設定が不完全です (%s): domain と sources は必須です", name)
		}

		key := strings.ToLower(strings.TrimSuffix(name, ".yaml"))
		entries[key] = df
	}

	return &DomainConfigStore{entries: entries}, nil
}

// Get はドメインキーに対応する設定を返します。
func (s *DomainConfigStore) Get(key string) (domain.DomainFile, bool) {
	df, ok := s.entries[strings.ToLower(key)]
	return df, ok
}

// Keys は登録済みのドメインキーをソート済みで返します。
func (s *DomainConfigStore) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len は登録済みドメイン数を返します。
func (s *DomainConfigStore) Len() int {
	return len(s.entries)
}
