package notify

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML neutralizes the Telegram HTML metacharacters in
// requester-controlled text before it is interpolated into a message body.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
