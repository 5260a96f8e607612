package approval

import (
	"strconv"
	"strings"
)

// Kind enumerates the decisions a callback token can encode.
type Kind int

const (
	KindInvalid Kind = iota
	KindApprove
	KindReject
)

// Action is the parsed form of a callback token such as "approve_5". Tokens
// that fail to parse carry KindInvalid and must never cause a mutation.
type Action struct {
	Kind     Kind
	ReportID int64
}

const tokenSeparator = "_"

// ApproveToken builds the callback data bound to the approve button. The
// separator never occurs in the action names, so a purely numeric report id
// round-trips unambiguously.
func ApproveToken(reportID int64) string {
	return "approve" + tokenSeparator + strconv.FormatInt(reportID, 10)
}

// RejectToken builds the callback data bound to the reject button.
func RejectToken(reportID int64) string {
	return "reject" + tokenSeparator + strconv.FormatInt(reportID, 10)
}

// ParseToken decodes callback data into a tagged Action, splitting at the
// first separator.
func ParseToken(data string) Action {
	name, idStr, ok := strings.Cut(data, tokenSeparator)
	if !ok {
		return Action{}
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Action{}
	}

	switch name {
	case "approve":
		return Action{Kind: KindApprove, ReportID: id}
	case "reject":
		return Action{Kind: KindReject, ReportID: id}
	default:
		return Action{}
	}
}
