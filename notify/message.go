package notify

import (
	"fmt"
	"strconv"

	"reqflow/approval"
	"reqflow/report"
)

// Button is one inline action affordance bound to an opaque callback token.
type Button struct {
	Label string
	Data  string
}

// RenderApproval produces the HTML notification body and the two mutually
// exclusive action buttons for a pending report. date and timeOfDay are
// optional client-supplied display strings; they are echoed, never persisted.
// Every free-text field is escaped before interpolation.
func RenderApproval(rep report.Report, date, timeOfDay string) (string, []Button) {
	text := fmt.Sprintf(`<b>📦 New Item Request</b>
-----------------------
👤 Requester: <b>%s</b>
📦 Item: <b>%s</b>
🔢 Qty: <b>%s</b>
📍 Branch: <b>%s</b>
📅 Date: <b>%s</b> %s
🟡 Status: <b>Pending</b>`,
		EscapeHTML(rep.Requester),
		EscapeHTML(rep.Item),
		EscapeHTML(strconv.Itoa(rep.Quantity)),
		EscapeHTML(rep.Branch),
		EscapeHTML(date),
		EscapeHTML(timeOfDay),
	)

	buttons := []Button{
		{Label: "✔ Approve", Data: approval.ApproveToken(rep.ID)},
		{Label: "❌ Reject", Data: approval.RejectToken(rep.ID)},
	}

	return text, buttons
}
