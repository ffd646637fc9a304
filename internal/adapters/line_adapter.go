package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"ap-scout-web/internal/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// --- インターフェース定義 ---

// DeliveryGateway はチャットプラットフォームへの配信境界です。
// 送信専用・ベストエフォート(at-least-once)であり、到達保証はありません。
type DeliveryGateway interface {
	// Reply は応答トークンに対する同期応答です。トークンの有効期限が短いため
	// 受信処理をブロックする重い作業の前に呼び出す必要があります。
	Reply(ctx context.Context, replyToken, text string) error
	// PushText は帯域外プッシュでプレーンテキストを届けます。
	PushText(ctx context.Context, userID, text string) error
	// PushDocument は表示用ドキュメントをプラットフォーム固有の
	// バブル形式に変換して届けます。ブロック順とリンク先は保持されます。
	PushDocument(ctx context.Context, userID string, doc domain.RenderedDocument) error
}

// --- 具象アダプター ---

// LineAdapter は LINE Messaging API を使用した DeliveryGateway の実装です。
type LineAdapter struct {
	client *messaging_api.MessagingApiAPI
}

// NewLineAdapter はチャネルアクセストークンからアダプターを生成します。
func NewLineAdapter(channelToken string) (*LineAdapter, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("LINEクライアントの初期化に失敗しました: %w", err)
	}
	return &LineAdapter{client: client}, nil
}

// Reply は応答トークンでテキストを返信します。
func (a *LineAdapter) Reply(_ context.Context, replyToken, text string) error {
	_, err := a.client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("LINEへの返信に失敗しました: %w", err)
	}
	return nil
}

// PushText はプレーンテキストをプッシュ送信します。
func (a *LineAdapter) PushText(_ context.Context, userID, text string) error {
	_, err := a.client.PushMessage(&messaging_api.PushMessageRequest{
		To: userID,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	}, "")
	if err != nil {
		return fmt.Errorf("LINEへのプッシュ送信に失敗しました: %w", err)
	}
	return nil
}

// PushDocument はドキュメントを Flex Message に変換してプッシュ送信します。
func (a *LineAdapter) PushDocument(_ context.Context, userID string, doc domain.RenderedDocument) error {
	_, err := a.client.PushMessage(&messaging_api.PushMessageRequest{
		To: userID,
		Messages: []messaging_api.MessageInterface{
			&messaging_api.FlexMessage{
				AltText:  doc.Title,
				Contents: buildFlexBubble(doc),
			},
		},
	}, "")
	if err != nil {
		return fmt.Errorf("LINEへのドキュメント送信に失敗しました: %w", err)
	}

	slog.Info("表示ドキュメントを配信しました", "title", doc.Title, "block_count", len(doc.Blocks))
	return nil
}

// buildFlexBubble はドキュメントを LINE のバブルコンテナに変換します。
func buildFlexBubble(doc domain.RenderedDocument) *messaging_api.FlexBubble {
	header := &messaging_api.FlexBox{
		Layout: "vertical",
		Contents: []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{
				Text:   doc.Title,
				Weight: "bold",
				Size:   "xl",
				Wrap:   true,
				Color:  doc.AccentColor,
			},
		},
	}

	var body []messaging_api.FlexComponentInterface
	for _, block := range doc.Blocks {
		body = append(body, buildFlexBlock(block))
	}

	return &messaging_api.FlexBubble{
		Header: header,
		Body: &messaging_api.FlexBox{
			Layout:   "vertical",
			Contents: body,
		},
	}
}

func buildFlexBlock(block domain.DocumentBlock) messaging_api.FlexComponentInterface {
	switch block.Type {
	case domain.BlockLink:
		return &messaging_api.FlexBox{
			Layout: "vertical",
			Margin: "lg",
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{Text: block.Title, Weight: "bold", Size: "md", Wrap: true},
				&messaging_api.FlexButton{
					Style:  "link",
					Height: "sm",
					Action: &messaging_api.PostbackAction{
						Label: "Deep Dive ➜",
						Data:  block.ActionData,
					},
				},
			},
		}

	case domain.BlockSection:
		contents := []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{Text: block.Heading, Weight: "bold", Size: "md", Wrap: true},
		}
		for _, bullet := range block.Bullets {
			contents = append(contents, &messaging_api.FlexText{
				Text: "・" + bullet,
				Size: "sm",
				Wrap: true,
			})
		}
		return &messaging_api.FlexBox{Layout: "vertical", Margin: "lg", Contents: contents}

	default:
		return &messaging_api.FlexBox{
			Layout: "vertical",
			Margin: "lg",
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{Text: block.Text, Size: "sm", Wrap: true},
			},
		}
	}
}
