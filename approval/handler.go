package approval

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"reqflow/report"
)

// Store is the slice of the report repository the handler needs.
type Store interface {
	Decide(ctx context.Context, id int64, status report.Status, approvedBy string) (report.Report, error)
}

// Messenger acknowledges the acting party and edits the originally displayed
// message. Implementations own the channel's markup rules.
type Messenger interface {
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
	AnnotateDecision(ctx context.Context, ref MessageRef, status report.Status, actor string) error
	RemoveActions(ctx context.Context, ref MessageRef) error
}

// Actor identifies who pressed a button.
type Actor struct {
	Username  string
	FirstName string
	ID        int64
}

// Identity resolves the attribution written to approvedBy: handle name first,
// then display name, then the numeric id.
func (a Actor) Identity() string {
	if a.Username != "" {
		return a.Username
	}
	if a.FirstName != "" {
		return a.FirstName
	}
	return strconv.FormatInt(a.ID, 10)
}

// MessageRef locates the outward-facing message a callback originated from.
type MessageRef struct {
	ChatID    int64
	MessageID int
	Text      string
}

// Event is one inbound callback from the messaging channel.
type Event struct {
	CallbackID string
	Data       string
	Actor      Actor
	Message    MessageRef
}

// Handler resolves a pending report's outcome from an approver's action.
type Handler struct {
	store     Store
	messenger Messenger
	log       *logrus.Logger
}

func NewHandler(store Store, messenger Messenger, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{store: store, messenger: messenger, log: log}
}

// Handle consumes one callback event. Only a storage failure during the state
// transition is returned; every acknowledgment and message-edit failure is
// logged and swallowed so the post-conditions stay independently fallible.
// A second press on a decided report mutates nothing and answers with a
// distinct already-decided alert.
func (h *Handler) Handle(ctx context.Context, ev Event) error {
	action := ParseToken(ev.Data)
	if action.Kind == KindInvalid {
		h.answer(ctx, ev.CallbackID, "Invalid action", true)
		return nil
	}

	status := report.StatusApproved
	if action.Kind == KindReject {
		status = report.StatusRejected
	}
	actor := ev.Actor.Identity()

	rep, err := h.store.Decide(ctx, action.ReportID, status, actor)
	switch {
	case errors.Is(err, report.ErrNotFound):
		h.answer(ctx, ev.CallbackID, "Report not found", true)
		return nil
	case errors.Is(err, report.ErrAlreadyDecided):
		h.answer(ctx, ev.CallbackID, fmt.Sprintf("Report #%d already decided", action.ReportID), true)
		return nil
	case err != nil:
		return fmt.Errorf("approval: decide report %d: %w", action.ReportID, err)
	}

	h.answer(ctx, ev.CallbackID, fmt.Sprintf("Report #%d %s", rep.ID, rep.Status), false)

	if err := h.messenger.AnnotateDecision(ctx, ev.Message, rep.Status, actor); err != nil {
		h.log.WithField("report_id", rep.ID).WithError(err).Warn("annotate decision failed")
	}
	if err := h.messenger.RemoveActions(ctx, ev.Message); err != nil {
		h.log.WithField("report_id", rep.ID).WithError(err).Warn("remove actions failed")
	}

	return nil
}

func (h *Handler) answer(ctx context.Context, callbackID, text string, alert bool) {
	if err := h.messenger.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		h.log.WithError(err).Warn("answer callback failed")
	}
}
