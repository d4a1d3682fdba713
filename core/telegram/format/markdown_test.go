package format

import "testing"

func TestEscapeV1(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain 2024-05-01", "plain 2024-05-01"},
		{"a_b*c`d[e", `a\_b\*c\` + "`" + `d\[e`},
		{"Pending_1", `Pending\_1`},
		{"1.5 (x)!", "1.5 (x)!"},
	}
	for _, tc := range cases {
		if got := EscapeV1(tc.in); got != tc.want {
			t.Fatalf("EscapeV1(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
