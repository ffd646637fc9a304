package builder

import (
	"context"
	"fmt"
	"log/slog"

	"ap-scout-web/internal/adapters"
	"ap-scout-web/internal/agent"
	"ap-scout-web/internal/compose"
	"ap-scout-web/internal/config"
	"ap-scout-web/internal/intent"
	"ap-scout-web/internal/pipeline"
	"ap-scout-web/internal/render"
	"ap-scout-web/internal/scout"
	"ap-scout-web/internal/store"
	"ap-scout-web/internal/tasks"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"google.golang.org/genai"
)

// AppContext はアプリケーションの依存関係を保持します。
// 各フィールドをインターフェースで定義することで、将来的なモック利用を容易にします。
type AppContext struct {
	Config     *config.Config
	Store      *store.DomainConfigStore
	Resolver   *intent.IntentResolver
	Pipeline   *pipeline.ScoutPipeline
	Gateway    adapters.DeliveryGateway
	Dispatcher tasks.Dispatcher
	HTTPClient httpkit.ClientInterface
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	// 2. ドメイン設定ストアの読み込みと既定ドメインの検証
	domainStore, err := store.Load(cfg.DomainConfigDir)
	if err != nil {
		return nil, fmt.Errorf("ドメイン設定の読み込みに失敗しました (dir: %s): %w", cfg.DomainConfigDir, err)
	}

	composer := compose.New(domainStore, cfg.DefaultDomainKey)
	if err := composer.ValidateDefault(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 3. 意図解決とエージェントオーケストレーションの構築
	classifier := intent.NewGeminiClassifier(genaiClient, cfg.ClassifierModel)
	resolver := intent.NewResolver(classifier, domainStore)

	bridge, err := agent.NewHTTPBridge(cfg.AgentBridgeURL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent bridge: %w", err)
	}
	orchestrator := scout.New(bridge, cfg.AgentStepBudget)

	// 4. アダプターの初期化
	gateway, err := adapters.NewLineAdapter(cfg.LineChannelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LINE adapter: %w", err)
	}

	notifier, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	archiver, err := buildArchiver(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 5. パイプラインの組み立て
	scoutPipeline := pipeline.NewScoutPipeline(
		composer,
		orchestrator,
		render.New(),
		gateway,
		notifier,
		archiver,
	)

	slog.Info("アプリケーションコンテキストを構築しました",
		"domain_count", domainStore.Len(),
		"default_domain", cfg.DefaultDomainKey,
		"archive_enabled", cfg.ArchiveEnabled(),
	)

	return &AppContext{
		Config:     cfg,
		Store:      domainStore,
		Resolver:   resolver,
		Pipeline:   scoutPipeline,
		Gateway:    gateway,
		Dispatcher: tasks.NewGoDispatcher(),
		HTTPClient: httpClient,
	}, nil
}

// buildArchiver はアーカイブ構成に応じて GCS または無効化実装を返します。
func buildArchiver(ctx context.Context, cfg *config.Config) (adapters.ReportArchiver, error) {
	if !cfg.ArchiveEnabled() {
		return adapters.NopArchiver{}, nil
	}

	ioFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS factory: %w", err)
	}
	writer, err := ioFactory.OutputWriter()
	if err != nil {
		return nil, fmt.Errorf("failed to create output writer: %w", err)
	}

	return adapters.NewGCSArchiver(cfg, writer), nil
}
