package report

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status enumerates the report lifecycle. A report starts pending and
// transitions exactly once to approved or rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Report is a single item request awaiting or having received a decision.
// CreatedAt is epoch seconds, matching the storage layout. ApprovedBy is nil
// while the report is pending.
type Report struct {
	ID         int64
	CreatedAt  int64
	Requester  string
	Item       string
	Quantity   int
	Branch     string
	Status     Status
	ApprovedBy *string
}

// Quantity tolerates sloppy client input: JSON numbers, numeric strings and
// garbage all decode, with anything that does not parse as a non-negative
// integer collapsing to 0. Absence and null are handled by the enclosing
// *Quantity field staying nil, which the service rejects.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*q = Quantity(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			*q = 0
			return nil
		}
		*q = Quantity(n)
	default:
		*q = 0
	}

	if *q < 0 {
		*q = 0
	}
	return nil
}
