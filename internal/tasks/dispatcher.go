package tasks

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
)

type ctxKey struct{}

// CurrentID はディスパッチャーが採番したタスクIDをコンテキストから取り出します。
// ディスパッチャー外のコンテキストでは空文字列を返します。
func CurrentID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// TaskFunc はバックグラウンドタスクの本体です。失敗の扱いはタスク側の
// 責務であり、ここへはエラーを返しません（未処理の失敗はユーザーから
// 見えないハングになるため、タスク内で必ずユーザー向け通知に変換されます）。
type TaskFunc func(ctx context.Context)

// Handle は発行済みタスクへの参照です。結果はプッシュ副作用としてのみ
// 観測されますが、テストハーネスが完了を決定的に待てるよう Done を公開します。
type Handle struct {
	ID   string
	done chan struct{}
}

// Done はタスク完了時にクローズされるチャネルを返します。
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Dispatcher はバックグラウンドタスクのスケジューリング境界です。
// 同時実行数の上限や同一リクエストの重複排除は意図的に行いません。
type Dispatcher interface {
	Dispatch(name string, fn TaskFunc) *Handle
}

// GoDispatcher は本番用のディスパッチャーです。タスクごとに独立した
// ゴルーチンを起動し、呼び出し側は一切待ちません。
// リクエストのコンテキストは応答後に破棄されるため、タスクには
// 独立した背景コンテキストを与えます。
type GoDispatcher struct{}

// NewGoDispatcher は GoDispatcher を生成します。
func NewGoDispatcher() *GoDispatcher {
	return &GoDispatcher{}
}

// Dispatch はタスクを起動し、即座にハンドルを返します。
func (d *GoDispatcher) Dispatch(name string, fn TaskFunc) *Handle {
	h := &Handle{ID: uuid.NewString(), done: make(chan struct{})}

	slog.Info("バックグラウンドタスクを起動します", "task", name, "task_id", h.ID)

	go func() {
		defer close(h.done)
		defer recoverPanic(name, h.ID)
		fn(withID(context.Background(), h.ID))
		slog.Info("バックグラウンドタスクが終了しました", "task", name, "task_id", h.ID)
	}()

	return h
}

// SyncDispatcher はテスト用の同期ディスパッチャーです。
// Dispatch が返る時点でタスクは完了しており、テストを決定的にします。
type SyncDispatcher struct{}

// NewSyncDispatcher は SyncDispatcher を生成します。
func NewSyncDispatcher() *SyncDispatcher {
	return &SyncDispatcher{}
}

// Dispatch はタスクをその場で実行してから完了済みハンドルを返します。
func (d *SyncDispatcher) Dispatch(name string, fn TaskFunc) *Handle {
	h := &Handle{ID: uuid.NewString(), done: make(chan struct{})}
	func() {
		defer close(h.done)
		defer recoverPanic(name, h.ID)
		fn(withID(context.Background(), h.ID))
	}()
	return h
}

// recoverPanic はタスク内のパニックを握りつぶさずログに残します。
// バックグラウンドの失敗をプロセス全体へ波及させないための最終防衛線です。
func recoverPanic(name, id string) {
	if r := recover(); r != nil {
		slog.Error("バックグラウンドタスクがパニックしました",
			"task", name,
			"task_id", id,
			"panic", r,
			"stack", string(debug.Stack()),
		)
	}
}
