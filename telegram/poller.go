package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"reqflow/approval"
)

// Poller consumes bot updates via long polling and feeds callback queries to
// the approval handler. Non-callback updates are ignored.
type Poller struct {
	bot     *tgbotapi.BotAPI
	handler *approval.Handler
	log     *logrus.Logger
	timeout int
}

func NewPoller(client *Client, handler *approval.Handler, log *logrus.Logger, pollTimeout int) *Poller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	return &Poller{bot: client.bot, handler: handler, log: log, timeout: pollTimeout}
}

// Run blocks consuming updates until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout

	updates := p.bot.GetUpdatesChan(cfg)
	p.log.Info("telegram poller started")

	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			cb := update.CallbackQuery
			if cb == nil || cb.From == nil || cb.Message == nil {
				continue
			}

			ev := approval.Event{
				CallbackID: cb.ID,
				Data:       cb.Data,
				Actor: approval.Actor{
					Username:  cb.From.UserName,
					FirstName: cb.From.FirstName,
					ID:        cb.From.ID,
				},
				Message: approval.MessageRef{
					ChatID:    cb.Message.Chat.ID,
					MessageID: cb.Message.MessageID,
					Text:      cb.Message.Text,
				},
			}

			if err := p.handler.Handle(ctx, ev); err != nil {
				p.log.WithError(err).Error("callback handling failed")
			}
		}
	}
}
