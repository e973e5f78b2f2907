package xapi

import "testing"

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT2H30M", 9000},
		{"PT1H", 3600},
		{"PT15M", 900},
		{"PT90S", 90},
		{"PT1H5M30S", 3930},
		{"PT0.5S", 1},
		{"pt3m", 180},
		{"P1DT1H", 3600},
		{"P3M", 0},
		{"PT", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := ParseDuration(tc.in); got != tc.want {
			t.Fatalf("ParseDuration(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{9000, "2h 30m"},
		{3600, "1h 0m"},
		{200, "3m 20s"},
		{45, "45s"},
		{0, "0s"},
		{-5, "0s"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.in); got != tc.want {
			t.Fatalf("FormatSeconds(%d): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
