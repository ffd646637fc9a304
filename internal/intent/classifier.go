package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Classification は外部分類サービスとの固定契約です。
type Classification struct {
	IsScoutRequest bool   `json:"is_scout_request"`
	Topic          string `json:"topic"`
	MatchedDomain  string `json:"matched_domain"`
	SearchQuery    string `json:"search_query"`
}

// Classifier は自由形式テキストをスカウト意図に分類する境界です。
type Classifier interface {
	Classify(ctx context.Context, text string, knownDomains []string) (Classification, error)
}

// GeminiClassifier は Gemini の構造化出力による Classifier 実装です。
// クライアントはプロセス起動時に一度だけ構築され、ここへ注入されます。
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier は構築済みの genai クライアントを受け取り分類器を生成します。
func NewGeminiClassifier(client *genai.Client, model string) *GeminiClassifier {
	return &GeminiClassifier{client: client, model: model}
}

// classificationSchema は応答を固定契約のJSONに制約します。
var classificationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"is_scout_request": {Type: genai.TypeBoolean},
		"topic":            {Type: genai.TypeString},
		"matched_domain":   {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"search_query":     {Type: genai.TypeString},
	},
	Required: []string{"is_scout_request", "topic", "search_query"},
}

func buildSystemPrompt(knownDomains []string) string {
	var sb strings.Builder
	sb.WriteString("You are a research assistant that extracts scouting intent from user messages.\n")
	sb.WriteString("User may write in any language (Chinese, English, etc.).\n\n")
	sb.WriteString("Reply with JSON only. Fields:\n")
	sb.WriteString(`{"is_scout_request": true/false, "topic": "<short English keyword>", `)
	sb.WriteString(`"matched_domain": "<domain_key or null>", "search_query": "<2-sentence English arXiv search description>"}`)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Known domain keys: [%s]\n", strings.Join(knownDomains, ", ")))
	sb.WriteString("Set matched_domain to the best matching key if the topic clearly maps to one, else null.\n")
	// 偽陰性の最小化を意図した寛容な方針: 純粋な挨拶・謝辞・空入力のみを
	// 非リクエストとし、主題を含むメッセージはすべてリクエストとして扱います。
	sb.WriteString("Only pure greetings, acknowledgements or empty messages are not scout requests. ")
	sb.WriteString("If the message names any subject at all, treat it as a request to find/research/scout that subject.")
	return sb.String()
}

// Classify はユーザーテキストを分類します。応答が契約どおりのJSONで
// ない場合はエラーを返し、呼び出し側でヘルプ経路へ縮退させます。
func (c *GeminiClassifier) Classify(ctx context.Context, text string, knownDomains []string) (Classification, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{
			{Parts: []*genai.Part{{Text: text}}},
		},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: buildSystemPrompt(knownDomains)}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    classificationSchema,
			Temperature:       genai.Ptr(float32(0)),
		},
	)
	if err != nil {
		return Classification{}, fmt.Errorf("分類サービスの呼び出しに失敗しました: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Classification{}, fmt.Errorf("分類サービスが候補を返しませんでした")
	}

	var rawJSON strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		rawJSON.WriteString(p.Text)
	}

	var cls Classification
	if err := json.Unmarshal([]byte(rawJSON.String()), &cls); err != nil {
		return Classification{}, fmt.Errorf("分類応答の解析に失敗しました: %w", err)
	}
	return cls, nil
}
