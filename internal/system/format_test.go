package system

import "testing"

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{8 << 30, "8.0 GB"},
		{3 << 40, "3.0 TB"},
		{2048 << 50, "2048.0 PB"},
	}
	for _, tc := range cases {
		if got := FormatSize(tc.in); got != tc.want {
			t.Fatalf("FormatSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
