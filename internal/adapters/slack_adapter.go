package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ap-scout-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

// OpsNotifier はスカウトタスクの完了・失敗を運用チャンネルへ通知する境界です。
// ユーザー向けの配信 (DeliveryGateway) とは独立しており、通知の失敗は
// タスク全体の成否に影響させません。
type OpsNotifier interface {
	Notify(ctx context.Context, reportURI string, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

// NewSlackAdapter は Slack 通知アダプターを生成します。
// webhookURL が未設定の場合、通知はスキップされます。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// Notify はスカウト完了時の運用通知を送信します。
func (a *SlackAdapter) Notify(ctx context.Context, reportURI string, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、通知をスキップします。", "report_uri", reportURI)
		return nil
	}

	icon := "🔍"
	if req.OutputCategory == "scout-summary" {
		icon = "📖"
	}

	title := fmt.Sprintf("%s スカウトレポートを配信しました", icon)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*対象ドメイン:* `%s`\n", req.TargetTitle))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n", req.ExecutionMode))
	sb.WriteString(fmt.Sprintf("*ソース:* %s\n", req.SourceURL))
	if reportURI != "" && reportURI != domain.CategoryNotAvailable {
		sb.WriteString(fmt.Sprintf("\n📍 *アーカイブ(URI):* `%s`\n", reportURI))
	}

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.Info("Slack に完了通知を送信しました。", "report_uri", reportURI)
	return nil
}

// NotifyError エラー詳細と実行メタデータを含むSlackエラー通知の送信。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	title := "❌ スカウトタスクでエラーが発生しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*対象ドメイン:* `%s`\n", req.TargetTitle))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n", req.ExecutionMode))
	sb.WriteString(fmt.Sprintf("*ソース:* %s\n\n", req.SourceURL))

	// エラー詳細をコードブロックで囲むことで可読性を向上させます。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}
