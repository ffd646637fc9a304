package scout

import (
	"context"
	"fmt"
	"log/slog"

	"ap-scout-web/internal/agent"
	"ap-scout-web/internal/domain"
)

const (
	PhaseDiscovery = "discovery"
	PhaseSummary   = "summary"
)

// PhaseError はエージェントフェーズの失敗を表す型付きエラーです。
// フェーズ名とドメインを保持し、呼び出し側でユーザー向け文面に変換されます。
// オーケストレーター自身はリトライしません。リトライは呼び出し側の方針です。
type PhaseError struct {
	Phase       string
	DomainLabel string
	Err         error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed for %s: %v", e.Phase, e.DomainLabel, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Orchestrator は外部ブラウジングエージェントに対する二相ワークフロー
// （発見、深掘り要約）を実行し、信頼できない出力の回収を担います。
type Orchestrator struct {
	agent      agent.Agent
	stepBudget int
}

// New は Orchestrator を生成します。エージェントは起動時に構築して注入します。
func New(a agent.Agent, stepBudget int) *Orchestrator {
	return &Orchestrator{agent: a, stepBudget: stepBudget}
}

// RunDiscovery は記事発見フェーズを実行し、正規化済みの結果を返します。
// 結果文字列がJSON配列として解釈できない場合はエラーではなく Narrative として
// 扱います。下流のレンダリングはどちらの形にも対応します。
func (o *Orchestrator) RunDiscovery(ctx context.Context, cfg domain.ScoutConfig) (domain.AgentRunResult, error) {
	instruction := buildDiscoveryInstruction(cfg)
	slog.InfoContext(ctx, "発見フェーズを開始します",
		"domain_key", cfg.DomainKey,
		"source_url", cfg.SourceURL,
	)

	outcome, err := o.agent.Run(ctx, instruction, o.stepBudget)
	if err != nil {
		return domain.EmptyResult(), &PhaseError{Phase: PhaseDiscovery, DomainLabel: cfg.DomainLabel, Err: err}
	}

	raw := recoverRaw(outcome)
	if raw == "" {
		slog.WarnContext(ctx, "発見フェーズは完走しましたが回収可能な出力がありません", "domain_key", cfg.DomainKey)
		return domain.EmptyResult(), nil
	}

	if articles, ok := parseArticleList(raw); ok {
		slog.InfoContext(ctx, "発見フェーズが構造化結果を返しました",
			"domain_key", cfg.DomainKey,
			"article_count", len(articles),
		)
		return domain.StructuredResult(articles), nil
	}

	slog.InfoContext(ctx, "発見フェーズの出力はJSON配列ではないため散文として扱います", "domain_key", cfg.DomainKey)
	return domain.NarrativeResult(raw), nil
}

// RunSummary は単一URLの深掘り要約フェーズを実行します。
// FocusPoints が空の設定で呼び出してはなりません。
func (o *Orchestrator) RunSummary(ctx context.Context, cfg domain.ScoutConfig, targetURL string) (domain.AgentRunResult, error) {
	if len(cfg.FocusPoints) == 0 {
		return domain.EmptyResult(), &PhaseError{
			Phase:       PhaseSummary,
			DomainLabel: cfg.DomainLabel,
			Err:         fmt.Errorf("focus points are empty for domain %s", cfg.DomainKey),
		}
	}

	instruction := buildSummaryInstruction(cfg, targetURL)
	slog.InfoContext(ctx, "要約フェーズを開始します",
		"domain_key", cfg.DomainKey,
		"target_url", targetURL,
	)

	outcome, err := o.agent.Run(ctx, instruction, o.stepBudget)
	if err != nil {
		return domain.EmptyResult(), &PhaseError{Phase: PhaseSummary, DomainLabel: cfg.DomainLabel, Err: err}
	}

	raw := recoverRaw(outcome)
	if raw == "" {
		return domain.EmptyResult(), nil
	}
	return domain.NarrativeResult(raw), nil
}

// recoverRaw は多段フォールバックで出力を回収します。
//  1. エージェントが明示的に done した最終結果
//  2. ステップ予算切れ等の場合、実行中に抽出された最後のコンテンツ
//  3. どちらも無ければ空文字列（= Empty）
func recoverRaw(outcome agent.RunOutcome) string {
	if outcome.FinalResult != "" {
		return outcome.FinalResult
	}
	if len(outcome.Extracted) > 0 {
		return outcome.Extracted[len(outcome.Extracted)-1]
	}
	return ""
}
