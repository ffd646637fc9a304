package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"ap-scout-web/internal/adapters"
	"ap-scout-web/internal/domain"
	"ap-scout-web/internal/store"
	"ap-scout-web/internal/tasks"

	linewebhook "github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// IntentResolver はメッセージテキストをスカウト設定へ解決する境界です。
// nil はスカウトリクエストではない（ヘルプ経路）ことを意味します。
type IntentResolver interface {
	Resolve(ctx context.Context, text string) *domain.ScoutConfig
}

// TaskExecutor はバックグラウンドで1タスクを実行する境界です。
type TaskExecutor interface {
	Execute(ctx context.Context, taskID string, payload domain.ScoutTaskPayload)
}

// Handler は LINE Webhook の受信コントローラーです。
// 署名検証と即時応答のみを同期で行い、エージェント実行はすべて
// ディスパッチャー経由のバックグラウンドタスクに委譲します。
type Handler struct {
	channelSecret string
	resolver      IntentResolver
	store         *store.DomainConfigStore
	gateway       adapters.DeliveryGateway
	dispatcher    tasks.Dispatcher
	executor      TaskExecutor
}

// NewHandler は Webhook ハンドラーを生成します。
func NewHandler(
	channelSecret string,
	resolver IntentResolver,
	s *store.DomainConfigStore,
	gateway adapters.DeliveryGateway,
	dispatcher tasks.Dispatcher,
	executor TaskExecutor,
) *Handler {
	return &Handler{
		channelSecret: channelSecret,
		resolver:      resolver,
		store:         s,
		gateway:       gateway,
		dispatcher:    dispatcher,
		executor:      executor,
	}
}

// Callback は LINE プラットフォームからのイベント通知を処理します。
// 応答トークンの有効期限が短いため、重い処理の前に必ず 200 を返します。
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	cb, err := linewebhook.ParseRequest(h.channelSecret, r)
	if err != nil {
		if errors.Is(err, linewebhook.ErrInvalidSignature) {
			slog.Warn("署名検証に失敗したリクエストを拒否します", "error", err)
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}
		slog.Error("Webhookリクエストの解析に失敗しました", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	for _, event := range cb.Events {
		switch e := event.(type) {
		case linewebhook.MessageEvent:
			h.handleMessageEvent(r.Context(), e)
		case linewebhook.PostbackEvent:
			h.handlePostbackEvent(r.Context(), e)
		default:
			// フォロー・グループ参加等のイベントは対象外です。
		}
	}

	w.WriteHeader(http.StatusOK)
}

// handleMessageEvent はテキストメッセージを意図解決し、発見タスクを発行します。
func (h *Handler) handleMessageEvent(ctx context.Context, event linewebhook.MessageEvent) {
	message, ok := event.Message.(linewebhook.TextMessageContent)
	if !ok {
		return
	}

	userID := sourceUserID(event.Source)
	if userID == "" {
		slog.Warn("送信元ユーザーを特定できないメッセージをスキップします")
		return
	}

	cfg := h.resolver.Resolve(ctx, message.Text)
	if cfg == nil {
		h.reply(ctx, event.ReplyToken, h.helpText())
		return
	}

	// 先に受付応答を返してからタスクを発行します。応答の失敗は
	// タスク発行を妨げません。
	ack := fmt.Sprintf("🤖 Agent is starting to scout %s. Results will arrive shortly.", cfg.DomainLabel)
	h.reply(ctx, event.ReplyToken, ack)

	payload := domain.ScoutTaskPayload{
		Command: domain.CommandDiscover,
		UserID:  userID,
		Config:  *cfg,
	}
	h.dispatch("scout-discover", payload)
}

// handlePostbackEvent は Deep Dive アクションを復号し、要約タスクを発行します。
func (h *Handler) handlePostbackEvent(ctx context.Context, event linewebhook.PostbackEvent) {
	userID := sourceUserID(event.Source)
	if userID == "" {
		slog.Warn("送信元ユーザーを特定できないポストバックをスキップします")
		return
	}

	action, err := domain.DecodeDeepDiveAction(event.Postback.Data)
	if err != nil {
		slog.Warn("ポストバックデータの復号に失敗しました", "error", err, "data", event.Postback.Data)
		return
	}

	h.reply(ctx, event.ReplyToken, "📖 Deep dive started. The summary will arrive shortly.")

	payload := domain.ScoutTaskPayload{
		Command:   domain.CommandSummarize,
		UserID:    userID,
		DomainKey: action.DomainKey,
		TargetURL: action.URL,
	}
	h.dispatch("scout-summarize", payload)
}

// dispatch はタスクIDを採番してバックグラウンド実行を発行します。
func (h *Handler) dispatch(name string, payload domain.ScoutTaskPayload) {
	handle := h.dispatcher.Dispatch(name, func(ctx context.Context) {
		h.executor.Execute(ctx, tasks.CurrentID(ctx), payload)
	})
	slog.Info("スカウトタスクを受け付けました",
		"task", name,
		"task_id", handle.ID,
		"command", payload.Command,
	)
}

func (h *Handler) reply(ctx context.Context, replyToken, text string) {
	if err := h.gateway.Reply(ctx, replyToken, text); err != nil {
		slog.Error("受付応答の送信に失敗しました", "error", err)
	}
}

// helpText はスカウトリクエストと解釈されなかった場合の案内文を組み立てます。
func (h *Handler) helpText() string {
	var sb strings.Builder
	sb.WriteString("Tell me a research topic and I will scout the latest papers for you.\n")
	sb.WriteString("Configured domains: ")
	sb.WriteString(strings.Join(h.store.Keys(), ", "))
	sb.WriteString("\nExample: \"What's new in AIOps?\"")
	return sb.String()
}

// sourceUserID はイベント送信元からユーザーIDを取り出します。
func sourceUserID(source linewebhook.SourceInterface) string {
	switch s := source.(type) {
	case linewebhook.UserSource:
		return s.UserId
	case *linewebhook.UserSource:
		return s.UserId
	default:
		return ""
	}
}

// Healthz は稼働確認用の軽量エンドポイントです。
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
