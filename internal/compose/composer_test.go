package compose

import (
	"os"
	"path/filepath"
	"testing"

	"ap-scout-web/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.DomainConfigStore {
	t.Helper()
	dir := t.TempDir()
	body := `domain: "AIOps"
sources:
  - name: "arXiv"
    url: "https://arxiv.org/list/cs.DC/recent"
scouting_logic:
  discovery_goal: "Find recent papers about anomaly detection."
  focus_points:
    - "Core technical contribution"
ui_display:
  color_code: "#1E90FF"
  icon: "🤖"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aiops.yaml"), []byte(body), 0o644))
	s, err := store.Load(dir)
	require.NoError(t, err)
	return s
}

func TestResolveDomainKnownKey(t *testing.T) {
	c := New(newTestStore(t), "aiops")

	cfg, err := c.ResolveDomain("aiops")
	require.NoError(t, err)

	assert.Equal(t, "aiops", cfg.DomainKey)
	assert.Equal(t, "AIOps", cfg.DomainLabel)
	assert.Equal(t, "https://arxiv.org/list/cs.DC/recent", cfg.SourceURL)
	assert.Equal(t, "#1E90FF", cfg.Accent.ColorCode)
}

func TestResolveDomainIsIdempotent(t *testing.T) {
	c := New(newTestStore(t), "aiops")

	first, err := c.ResolveDomain("aiops")
	require.NoError(t, err)
	second, err := c.ResolveDomain("aiops")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveDomainFallsBackToDefault(t *testing.T) {
	c := New(newTestStore(t), "aiops")

	cfg, err := c.ResolveDomain("custom:quantum computing")
	require.NoError(t, err)

	assert.Equal(t, "aiops", cfg.DomainKey)
}

func TestValidateDefault(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, New(s, "aiops").ValidateDefault())
	assert.Error(t, New(s, "missing").ValidateDefault())
}
