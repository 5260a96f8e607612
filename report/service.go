package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrValidation marks bad creation input surfaced to callers as a client error.
var ErrValidation = errors.New("report: invalid input")

// Notifier delivers an actionable approval request to the approver channel.
type Notifier interface {
	NotifyPending(ctx context.Context, rep Report, date, timeOfDay string) error
}

// SubmitParams carries an inbound creation request. Quantity is a pointer so
// absent/null input is distinguishable from a submitted zero. Date and Time
// are display-only strings echoed into the notification, never persisted.
type SubmitParams struct {
	Requester string
	Branch    string
	Item      string
	Quantity  *Quantity
	Date      string
	Time      string
}

// ListResult bundles one page of reports with the total row count.
type ListResult struct {
	Items []Report
	Total int
}

// Service validates inbound creation requests, persists them and triggers the
// approver notification.
type Service struct {
	repo     Repository
	notifier Notifier
	log      *logrus.Logger
}

func NewService(repo Repository, notifier Notifier, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{repo: repo, notifier: notifier, log: log}
}

// Submit stores a new pending report and dispatches exactly one approval
// notification. Dispatch is not transactional with persistence: when delivery
// fails the error is returned alongside the already-stored report, which is
// never rolled back.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (Report, error) {
	if strings.TrimSpace(params.Requester) == "" {
		return Report{}, fmt.Errorf("%w: requester required", ErrValidation)
	}
	if strings.TrimSpace(params.Branch) == "" {
		return Report{}, fmt.Errorf("%w: branch required", ErrValidation)
	}
	if strings.TrimSpace(params.Item) == "" {
		return Report{}, fmt.Errorf("%w: item required", ErrValidation)
	}
	if params.Quantity == nil {
		return Report{}, fmt.Errorf("%w: quantity required", ErrValidation)
	}

	rep, err := s.repo.Create(ctx, CreateParams{
		Requester: params.Requester,
		Item:      params.Item,
		Quantity:  int(*params.Quantity),
		Branch:    params.Branch,
	})
	if err != nil {
		return Report{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyPending(ctx, rep, params.Date, params.Time); err != nil {
			// A saved-but-unnotified report beats a lost report.
			s.log.WithField("report_id", rep.ID).WithError(err).Error("approval notification failed")
			return rep, err
		}
	}

	return rep, nil
}

// List returns one page of reports plus the filtered total.
func (s *Service) List(ctx context.Context, filters Filters) (ListResult, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}
