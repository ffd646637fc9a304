package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"ap-scout-web/internal/config"
	"ap-scout-web/internal/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ReportArchiver は配信済みレポートをストレージに書き出す境界です。
// 会話状態は一切永続化しません。レポートは書き込み専用の成果物です。
type ReportArchiver interface {
	Archive(ctx context.Context, taskID string, doc domain.RenderedDocument) (string, error)
}

// GCSArchiver は go-remote-io を利用した ReportArchiver の実装です。
type GCSArchiver struct {
	cfg    *config.Config
	writer remoteio.OutputWriter
}

// NewGCSArchiver は GCS ベースのアーカイバーを生成します。
func NewGCSArchiver(cfg *config.Config, writer remoteio.OutputWriter) *GCSArchiver {
	return &GCSArchiver{cfg: cfg, writer: writer}
}

// Archive はレポートをJSONとして保存し、保存先URIを返します。
func (a *GCSArchiver) Archive(ctx context.Context, taskID string, doc domain.RenderedDocument) (string, error) {
	outputFullURL := a.cfg.GetGCSObjectURL(path.Join(a.cfg.GetReportDir(taskID), "report.json"))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("レポートJSONのシリアライズに失敗しました: %w", err)
	}

	if err := a.writer.Write(ctx, outputFullURL, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("レポートの保存に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "レポートをアーカイブしました", "uri", outputFullURL)
	return outputFullURL, nil
}

// NopArchiver はアーカイブが無効な構成で使用される実装です。
type NopArchiver struct{}

// Archive は何もせず N/A を返します。
func (NopArchiver) Archive(context.Context, string, domain.RenderedDocument) (string, error) {
	return domain.CategoryNotAvailable, nil
}
