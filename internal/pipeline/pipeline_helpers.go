package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ap-scout-web/internal/domain"
	"ap-scout-web/internal/scout"
)

const errorReportCategory = "error-report"

// handlePhaseFailure はエージェントフェーズの失敗をユーザー向けの
// 謝罪メッセージと運用通知に変換します。自動リトライは行いません。
func (e *scoutExecution) handlePhaseFailure(ctx context.Context, cfg domain.ScoutConfig, opErr error) {
	phase := "scout"
	label := cfg.DomainLabel

	var pe *scout.PhaseError
	if errors.As(opErr, &pe) {
		phase = pe.Phase
		label = pe.DomainLabel
	}

	slog.ErrorContext(ctx, "エージェントフェーズが失敗しました",
		"phase", phase,
		"domain", label,
		"error", opErr,
	)

	e.pushApology(ctx, phase, label)
	e.notifyOpsError(ctx, opErr, cfg)
}

// pushApology はフェーズ名とドメインを明示した失敗通知をユーザーに届けます。
// 成功時と同じプッシュチャネルを使用します。
func (e *scoutExecution) pushApology(ctx context.Context, phase, domainLabel string) {
	text := fmt.Sprintf("Sorry, the %s phase for %s failed. Please try again later.", phase, domainLabel)
	if err := e.pipeline.gateway.PushText(ctx, e.payload.UserID, text); err != nil {
		slog.ErrorContext(ctx, "失敗通知の配信にも失敗しました", "error", err)
	}
}

// notifyOpsError は運用チャンネルへエラーを通知します。
func (e *scoutExecution) notifyOpsError(ctx context.Context, opErr error, cfg domain.ScoutConfig) {
	req := e.buildNotification(cfg, errorReportCategory)
	if err := e.pipeline.notifier.NotifyError(ctx, opErr, req); err != nil {
		slog.ErrorContext(ctx, "Failed to send error notification", "error", err)
	}
}

func (e *scoutExecution) buildNotification(cfg domain.ScoutConfig, category string) domain.NotificationRequest {
	source := cfg.SourceURL
	if e.payload.Command == domain.CommandSummarize {
		source = e.payload.TargetURL
	}

	title := cfg.DomainLabel
	if title == "" {
		title = e.payload.DomainKey
	}

	return domain.NotificationRequest{
		SourceURL:      source,
		OutputCategory: category,
		TargetTitle:    title,
		ExecutionMode:  e.payload.Command + " / " + cfg.DomainKey,
	}
}
