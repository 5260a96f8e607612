package notify

import (
	"context"
	"errors"
	"fmt"

	"reqflow/report"
)

// ErrDispatch marks a failed delivery to the approver channel. The persisted
// report is never rolled back on dispatch failure.
var ErrDispatch = errors.New("notify: dispatch failed")

// Sender delivers a rendered message with inline buttons to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, buttons []Button) error
}

// Dispatcher renders pending reports into actionable notifications for the
// configured approver chat. It implements report.Notifier.
type Dispatcher struct {
	sender Sender
	chatID int64
}

func NewDispatcher(sender Sender, chatID int64) *Dispatcher {
	return &Dispatcher{sender: sender, chatID: chatID}
}

// NotifyPending sends the approval request for a freshly created report.
func (d *Dispatcher) NotifyPending(ctx context.Context, rep report.Report, date, timeOfDay string) error {
	text, buttons := RenderApproval(rep, date, timeOfDay)
	if err := d.sender.Send(ctx, d.chatID, text, buttons); err != nil {
		return fmt.Errorf("%w: report %d: %v", ErrDispatch, rep.ID, err)
	}
	return nil
}
