package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reqflow/approval"
	"reqflow/notify"
	"reqflow/report"
)

// Client wraps the Telegram Bot API for sending approval messages, answering
// callbacks and editing previously sent messages. It implements notify.Sender
// and approval.Messenger. Every outbound call is bounded by the HTTP client
// timeout so a hung Bot API never stalls the enclosing request.
type Client struct {
	bot *tgbotapi.BotAPI
}

func NewClient(token string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: empty bot token")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("telegram: init bot: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Send delivers an HTML message with one row of inline buttons.
func (c *Client) Send(ctx context.Context, chatID int64, text string, buttons []notify.Button) error {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(row) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	return nil
}

// AnswerCallback emits the small confirmation popup to the acting party.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := c.bot.Request(cb); err != nil {
		return fmt.Errorf("telegram: answer callback: %w", err)
	}
	return nil
}

// AnnotateDecision appends the decision outcome to the original message text.
// The actor string is escaped; the surrounding markup is ours.
func (c *Client) AnnotateDecision(ctx context.Context, ref approval.MessageRef, status report.Status, actor string) error {
	annotated := ref.Text + "\n\n⚙️ Status: <b>" + strings.ToUpper(string(status)) + "</b> by " + notify.EscapeHTML(actor)

	edit := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, annotated)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := c.bot.Request(edit); err != nil {
		return fmt.Errorf("telegram: edit message text: %w", err)
	}
	return nil
}

// RemoveActions strips the inline keyboard so the decision cannot be
// re-triggered from the displayed message.
func (c *Client) RemoveActions(ctx context.Context, ref approval.MessageRef) error {
	markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	edit := tgbotapi.NewEditMessageReplyMarkup(ref.ChatID, ref.MessageID, markup)
	if _, err := c.bot.Request(edit); err != nil {
		return fmt.Errorf("telegram: edit reply markup: %w", err)
	}
	return nil
}
