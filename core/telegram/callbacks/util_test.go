package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name         string
		cb           *tele.Callback
		key, payload string
	}{
		{"nil", nil, "", ""},
		{"unique set", &tele.Callback{Unique: "confirm_yes", Data: "x"}, "confirm_yes", "x"},
		{"encoded", &tele.Callback{Data: "\fconfirm_no"}, "confirm_no", ""},
		{"encoded payload", &tele.Callback{Data: "\fpage|2"}, "page", "2"},
		{"bare", &tele.Callback{Data: "confirm_yes"}, "confirm_yes", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload := ParseCallbackData(tc.cb)
			if key != tc.key || payload != tc.payload {
				t.Fatalf("got (%q, %q), want (%q, %q)", key, payload, tc.key, tc.payload)
			}
		})
	}
}
