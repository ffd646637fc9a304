package pipeline

import (
	"context"
	"log/slog"

	"ap-scout-web/internal/adapters"
	"ap-scout-web/internal/compose"
	"ap-scout-web/internal/domain"
	"ap-scout-web/internal/render"
	"ap-scout-web/internal/scout"
)

// ScoutPipeline はバックグラウンドで実行されるスカウトワークフローの本体です。
// 失敗はすべてこの層でユーザー向けメッセージと運用通知に変換され、
// タスク境界の外へは伝播しません。
type ScoutPipeline struct {
	composer     *compose.ConfigComposer
	orchestrator *scout.Orchestrator
	renderer     *render.Renderer
	gateway      adapters.DeliveryGateway
	notifier     adapters.OpsNotifier
	archiver     adapters.ReportArchiver
}

// NewScoutPipeline は ScoutPipeline を生成します。
func NewScoutPipeline(
	composer *compose.ConfigComposer,
	orchestrator *scout.Orchestrator,
	renderer *render.Renderer,
	gateway adapters.DeliveryGateway,
	notifier adapters.OpsNotifier,
	archiver adapters.ReportArchiver,
) *ScoutPipeline {
	return &ScoutPipeline{
		composer:     composer,
		orchestrator: orchestrator,
		renderer:     renderer,
		gateway:      gateway,
		notifier:     notifier,
		archiver:     archiver,
	}
}

// Execute は1タスク分のスカウト実行を行います。
func (p *ScoutPipeline) Execute(ctx context.Context, taskID string, payload domain.ScoutTaskPayload) {
	exec := &scoutExecution{pipeline: p, taskID: taskID, payload: payload}
	exec.run(ctx)
}

// scoutExecution は一回のタスク実行に関する状態を保持します。
type scoutExecution struct {
	pipeline *ScoutPipeline
	taskID   string
	payload  domain.ScoutTaskPayload
}

func (e *scoutExecution) run(ctx context.Context) {
	slog.InfoContext(ctx, "Pipeline execution started",
		"command", e.payload.Command,
		"task_id", e.taskID,
	)

	switch e.payload.Command {
	case domain.CommandDiscover:
		e.runDiscovery(ctx)
	case domain.CommandSummarize:
		e.runSummary(ctx)
	default:
		slog.ErrorContext(ctx, "未対応のコマンドです", "command", e.payload.Command)
	}
}

// runDiscovery は発見フェーズを実行し、リンク一覧を配信します。
func (e *scoutExecution) runDiscovery(ctx context.Context) {
	cfg := e.payload.Config

	res, err := e.pipeline.orchestrator.RunDiscovery(ctx, cfg)
	if err != nil {
		e.handlePhaseFailure(ctx, cfg, err)
		return
	}

	doc := e.pipeline.renderer.RenderDiscovery(cfg.DomainLabel, res, cfg.DomainKey)
	doc.AccentColor = cfg.Accent.ColorCode

	e.deliver(ctx, cfg, doc, "scout-report")
}

// runSummary はドメインキーを再解決し、深掘り要約を配信します。
func (e *scoutExecution) runSummary(ctx context.Context) {
	cfg, err := e.pipeline.composer.ResolveDomain(e.payload.DomainKey)
	if err != nil {
		// 起動時バリデーションにより通常到達しない経路です。
		slog.ErrorContext(ctx, "ドメイン再解決に失敗しました", "error", err, "domain_key", e.payload.DomainKey)
		e.pushApology(ctx, scout.PhaseSummary, e.payload.DomainKey)
		e.notifyOpsError(ctx, err, cfg)
		return
	}

	res, err := e.pipeline.orchestrator.RunSummary(ctx, cfg, e.payload.TargetURL)
	if err != nil {
		e.handlePhaseFailure(ctx, cfg, err)
		return
	}

	doc := e.pipeline.renderer.RenderSummary(res)
	doc.AccentColor = cfg.Accent.ColorCode

	e.deliver(ctx, cfg, doc, "scout-summary")
}

// deliver はドキュメントの配信・アーカイブ・運用通知を行います。
// アーカイブと運用通知の失敗は配信の成否に影響させません。
func (e *scoutExecution) deliver(ctx context.Context, cfg domain.ScoutConfig, doc domain.RenderedDocument, category string) {
	if err := e.pipeline.gateway.PushDocument(ctx, e.payload.UserID, doc); err != nil {
		slog.ErrorContext(ctx, "ドキュメントの配信に失敗しました", "error", err)
		e.notifyOpsError(ctx, err, cfg)
		return
	}

	reportURI, err := e.pipeline.archiver.Archive(ctx, e.taskID, doc)
	if err != nil {
		slog.ErrorContext(ctx, "レポートのアーカイブに失敗しました", "error", err)
		reportURI = domain.CategoryNotAvailable
	}

	req := e.buildNotification(cfg, category)
	if notifyErr := e.pipeline.notifier.Notify(ctx, reportURI, req); notifyErr != nil {
		slog.ErrorContext(ctx, "Notification failed", "error", notifyErr)
	}
}
