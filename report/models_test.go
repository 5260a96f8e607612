package report

import (
	"encoding/json"
	"testing"
)

func TestQuantity_LenientDecoding(t *testing.T) {
	type payload struct {
		Q *Quantity `json:"q"`
	}

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "number", body: `{"q":2}`, want: 2},
		{name: "numeric string", body: `{"q":"7"}`, want: 7},
		{name: "padded string", body: `{"q":" 3 "}`, want: 3},
		{name: "garbage string", body: `{"q":"abc"}`, want: 0},
		{name: "fraction truncates", body: `{"q":2.9}`, want: 2},
		{name: "negative number clamps", body: `{"q":-4}`, want: 0},
		{name: "negative string clamps", body: `{"q":"-4"}`, want: 0},
		{name: "boolean", body: `{"q":true}`, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tc.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Q == nil {
				t.Fatal("expected quantity to be set")
			}
			if int(*p.Q) != tc.want {
				t.Errorf("quantity = %d, want %d", int(*p.Q), tc.want)
			}
		})
	}
}

func TestQuantity_AbsentAndNullStayNil(t *testing.T) {
	type payload struct {
		Q *Quantity `json:"q"`
	}

	for _, body := range []string{`{}`, `{"q":null}`} {
		var p payload
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", body, err)
		}
		if p.Q != nil {
			t.Errorf("body %s: expected nil quantity, got %d", body, int(*p.Q))
		}
	}
}
