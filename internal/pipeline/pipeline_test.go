package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ap-scout-web/internal/adapters"
	"ap-scout-web/internal/agent"
	"ap-scout-web/internal/compose"
	"ap-scout-web/internal/domain"
	"ap-scout-web/internal/render"
	"ap-scout-web/internal/scout"
	"ap-scout-web/internal/store"
	"ap-scout-web/internal/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	outcome agent.RunOutcome
	err     error
}

func (f *fakeAgent) Run(context.Context, string, int) (agent.RunOutcome, error) {
	return f.outcome, f.err
}

type fakeGateway struct {
	pushedTexts []string
	pushedDocs  []domain.RenderedDocument
	pushedTo    []string
}

func (f *fakeGateway) Reply(context.Context, string, string) error { return nil }

func (f *fakeGateway) PushText(_ context.Context, userID, text string) error {
	f.pushedTo = append(f.pushedTo, userID)
	f.pushedTexts = append(f.pushedTexts, text)
	return nil
}

func (f *fakeGateway) PushDocument(_ context.Context, userID string, doc domain.RenderedDocument) error {
	f.pushedTo = append(f.pushedTo, userID)
	f.pushedDocs = append(f.pushedDocs, doc)
	return nil
}

type fakeNotifier struct {
	notified []domain.NotificationRequest
	errored  []domain.NotificationRequest
}

func (f *fakeNotifier) Notify(_ context.Context, _ string, req domain.NotificationRequest) error {
	f.notified = append(f.notified, req)
	return nil
}

func (f *fakeNotifier) NotifyError(_ context.Context, _ error, req domain.NotificationRequest) error {
	f.errored = append(f.errored, req)
	return nil
}

func newComposer(t *testing.T) *compose.ConfigComposer {
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
	return compose.New(s, "aiops")
}

func newPipeline(t *testing.T, fa *fakeAgent) (*ScoutPipeline, *fakeGateway, *fakeNotifier) {
	t.Helper()
	gw := &fakeGateway{}
	nt := &fakeNotifier{}
	p := NewScoutPipeline(
		newComposer(t),
		scout.New(fa, 10),
		render.New(),
		gw,
		nt,
		adapters.NopArchiver{},
	)
	return p, gw, nt
}

func discoverPayload() domain.ScoutTaskPayload {
	return domain.ScoutTaskPayload{
		Command: domain.CommandDiscover,
		UserID:  "U123",
		Config: domain.ScoutConfig{
			DomainKey:     "aiops",
			DomainLabel:   "AIOps",
			SourceURL:     "https://arxiv.org/list/cs.DC/recent",
			DiscoveryGoal: "anomaly detection",
			FocusPoints:   []string{"Core technical contribution"},
			Accent:        domain.UIAccent{ColorCode: "#1E90FF"},
		},
	}
}

func TestExecuteDiscoverySuccess(t *testing.T) {
	fa := &fakeAgent{outcome: agent.RunOutcome{
		FinalResult: `[{"title":"Paper A","url":"https://arxiv.org/abs/2602.00001"}]`,
	}}
	p, gw, nt := newPipeline(t, fa)

	p.Execute(context.Background(), "task-1", discoverPayload())

	require.Len(t, gw.pushedDocs, 1)
	doc := gw.pushedDocs[0]
	assert.Equal(t, "🔍 AIOps Report", doc.Title)
	assert.Equal(t, "#1E90FF", doc.AccentColor)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockLink, doc.Blocks[0].Type)

	require.Len(t, nt.notified, 1)
	assert.Equal(t, "scout-report", nt.notified[0].OutputCategory)
	assert.Empty(t, nt.errored)
}

func TestExecuteDiscoveryAgentFailure(t *testing.T) {
	fa := &fakeAgent{err: errors.New("browser crashed")}
	p, gw, nt := newPipeline(t, fa)

	// 同期ディスパッチャー越しに実行し、バックグラウンド失敗がハングも
	// クラッシュも起こさないことを確認します。
	h := tasks.NewSyncDispatcher().Dispatch("discover", func(ctx context.Context) {
		p.Execute(ctx, "task-1", discoverPayload())
	})
	<-h.Done()

	require.Len(t, gw.pushedTexts, 1)
	assert.Contains(t, gw.pushedTexts[0], "discovery")
	assert.Contains(t, gw.pushedTexts[0], "AIOps")
	assert.Empty(t, gw.pushedDocs)

	require.Len(t, nt.errored, 1)
	assert.Equal(t, "error-report", nt.errored[0].OutputCategory)
}

func TestExecuteDiscoveryEmptyResultIsNotice(t *testing.T) {
	fa := &fakeAgent{outcome: agent.RunOutcome{}}
	p, gw, nt := newPipeline(t, fa)

	p.Execute(context.Background(), "task-1", discoverPayload())

	// 結果なしは失敗とは区別され、通知ドキュメントとして配信されます。
	require.Len(t, gw.pushedDocs, 1)
	require.Len(t, gw.pushedDocs[0].Blocks, 1)
	assert.Equal(t, render.NoResultsText, gw.pushedDocs[0].Blocks[0].Text)
	assert.Empty(t, gw.pushedTexts)
	assert.Empty(t, nt.errored)
}

func TestExecuteSummarizeResolvesDomain(t *testing.T) {
	fa := &fakeAgent{outcome: agent.RunOutcome{
		FinalResult: "## Paper X\n### 背景\n- 問題一",
	}}
	p, gw, _ := newPipeline(t, fa)

	p.Execute(context.Background(), "task-2", domain.ScoutTaskPayload{
		Command:   domain.CommandSummarize,
		UserID:    "U123",
		DomainKey: "aiops",
		TargetURL: "https://arxiv.org/abs/2602.00001",
	})

	require.Len(t, gw.pushedDocs, 1)
	assert.Equal(t, "Paper X", gw.pushedDocs[0].Title)
	assert.Equal(t, "#1E90FF", gw.pushedDocs[0].AccentColor)
}

func TestExecuteSummarizeUnknownDomainFallsBack(t *testing.T) {
	fa := &fakeAgent{outcome: agent.RunOutcome{
		FinalResult: "## Paper X\n### 背景\n- 問題一",
	}}
	p, gw, nt := newPipeline(t, fa)

	p.Execute(context.Background(), "task-3", domain.ScoutTaskPayload{
		Command:   domain.CommandSummarize,
		UserID:    "U123",
		DomainKey: "custom:unknown topic",
		TargetURL: "https://arxiv.org/abs/2602.00001",
	})

	// 未知キーは既定ドメインへ差し替えられ、深掘りは失敗しません。
	require.Len(t, gw.pushedDocs, 1)
	assert.Empty(t, nt.errored)
}

func TestExecuteUnknownCommandDoesNothing(t *testing.T) {
	p, gw, nt := newPipeline(t, &fakeAgent{})

	p.Execute(context.Background(), "task-4", domain.ScoutTaskPayload{Command: "bogus"})

	assert.Empty(t, gw.pushedDocs)
	assert.Empty(t, gw.pushedTexts)
	assert.Empty(t, nt.notified)
}
