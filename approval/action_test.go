package approval

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	cases := []struct {
		token string
		want  Action
	}{
		{ApproveToken(5), Action{Kind: KindApprove, ReportID: 5}},
		{RejectToken(12), Action{Kind: KindReject, ReportID: 12}},
		{ApproveToken(0), Action{Kind: KindApprove, ReportID: 0}},
	}

	for _, tc := range cases {
		if got := ParseToken(tc.token); got != tc.want {
			t.Errorf("ParseToken(%q) = %+v, want %+v", tc.token, got, tc.want)
		}
	}
}

func TestParseToken_Invalid(t *testing.T) {
	for _, data := range []string{
		"",
		"approve",
		"approve_",
		"approve_abc",
		"promote_5",
		"_5",
		"5_approve",
	} {
		if got := ParseToken(data); got.Kind != KindInvalid {
			t.Errorf("ParseToken(%q) = %+v, want invalid", data, got)
		}
	}
}
