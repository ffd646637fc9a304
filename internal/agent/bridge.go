package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBridgeTimeout = 5 * time.Minute

// HTTPBridge は browser-use ランナーサービスへの Agent 実装です。
// 1回の Run はランナー側でエージェントループが完走するまで同期的に
// ブロックします。タイムアウトはブラウジング実行全体を考慮した値にします。
type HTTPBridge struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPBridge はランナーサービスのベースURLからブリッジを生成します。
func NewHTTPBridge(baseURL string, timeout time.Duration) (*HTTPBridge, error) {
	endpoint, err := url.JoinPath(baseURL, "/run")
	if err != nil {
		return nil, fmt.Errorf("エージェントランナーURLの構築に失敗しました: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultBridgeTimeout
	}

	return &HTTPBridge{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type runRequest struct {
	Task     string `json:"task"`
	MaxSteps int    `json:"max_steps"`
}

type runResponse struct {
	FinalResult      string   `json:"final_result"`
	ExtractedContent []string `json:"extracted_content"`
	Error            string   `json:"error"`
}

// Run は指示とステップ予算をランナーに渡し、生の観測結果を返します。
func (b *HTTPBridge) Run(ctx context.Context, instruction string, stepBudget int) (RunOutcome, error) {
	body, err := json.Marshal(runRequest{Task: instruction, MaxSteps: stepBudget})
	if err != nil {
		return RunOutcome{}, fmt.Errorf("ランナーリクエストのシリアライズに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return RunOutcome{}, fmt.Errorf("ランナーリクエストの構築に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return RunOutcome{}, fmt.Errorf("エージェントランナーの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return RunOutcome{}, fmt.Errorf("エージェントランナーがエラーを返しました (status=%d): %s", resp.StatusCode, detail)
	}

	var rr runResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return RunOutcome{}, fmt.Errorf("ランナー応答の解析に失敗しました: %w", err)
	}
	if rr.Error != "" {
		return RunOutcome{}, fmt.Errorf("エージェント実行が失敗しました: %s", rr.Error)
	}

	return RunOutcome{
		FinalResult: rr.FinalResult,
		Extracted:   rr.ExtractedContent,
	}, nil
}
