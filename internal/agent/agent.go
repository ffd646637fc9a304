package agent

import "context"

// RunOutcome は外部エージェント実行1回分の生の観測結果です。
// 出力は非決定的であり、「JSONかもしれない・散文かもしれない・空かもしれない」
// 以上の構造を仮定してはなりません。
type RunOutcome struct {
	// FinalResult はエージェントが明示的に done を宣言した際の最終結果です。
	// ステップ予算切れなどで宣言がない場合は空になります。
	FinalResult string
	// Extracted は実行中にエージェントがページから抽出したコンテンツの履歴です。
	Extracted []string
}

// Agent は外部の自律ブラウジングエージェントとの境界です。
// 実際のページナビゲーションはすべてエージェント側が所有します。
type Agent interface {
	Run(ctx context.Context, instruction string, stepBudget int) (RunOutcome, error)
}
