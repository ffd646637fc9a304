package domain

import (
	"fmt"
	"net/url"
)

// ActionSummarize は深掘り要約を要求するアクション種別です。
const ActionSummarize = "summarize"

// DeepDiveAction はボタンのポストバックに載せる不透明トークンの中身です。
// URL に '=' や '&' が含まれてもエンコード・デコードで破損しないことが
// 必須要件です。素朴な split('=') によるデコードは既知の欠陥であり、
// 必ず url.Values / url.ParseQuery を経由します。
type DeepDiveAction struct {
	Action    string
	DomainKey string
	URL       string
}

// Encode はアクションをクエリ文字列形式にエンコードします。
func (a DeepDiveAction) Encode() string {
	v := url.Values{}
	v.Set("action", a.Action)
	v.Set("domain", a.DomainKey)
	v.Set("url", a.URL)
	return v.Encode()
}

// NewSummarizeAction は summarize アクションのトークンを構築します。
func NewSummarizeAction(domainKey, targetURL string) DeepDiveAction {
	return DeepDiveAction{Action: ActionSummarize, DomainKey: domainKey, URL: targetURL}
}

// DecodeDeepDiveAction はポストバックデータからアクションを復元します。
func DecodeDeepDiveAction(data string) (DeepDiveAction, error) {
	v, err := url.ParseQuery(data)
	if err != nil {
		return DeepDiveAction{}, fmt.Errorf("アクションデータの解析に失敗しました: %w", err)
	}

	a := DeepDiveAction{
		Action:    v.Get("action"),
		DomainKey: v.Get("domain"),
		URL:       v.Get("url"),
	}
	if a.Action == "" {
		return DeepDiveAction{}, fmt.Errorf("アクション種別が含まれていません: %q", data)
	}
	return a, nil
}
