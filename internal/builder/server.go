package builder

import (
	"net/http"

	"ap-scout-web/internal/controllers/webhook"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewServerHandler は HTTP ルーティングと各ハンドラーの依存関係を組み立てます。
func NewServerHandler(app *AppContext) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	webhookHandler := webhook.NewHandler(
		app.Config.LineChannelSecret,
		app.Resolver,
		app.Store,
		app.Gateway,
		app.Dispatcher,
		app.Pipeline,
	)

	// LINE プラットフォームからの受信口。署名検証はハンドラー内で行います。
	r.Post("/callback", webhookHandler.Callback)
	r.Get("/healthz", webhook.Healthz)

	return r
}
