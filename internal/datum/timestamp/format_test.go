package timestamp

import (
	"strings"
	"testing"
)

const day = uint64(86400) * nsPerSec

func TestFormatRFC3339Nano(t *testing.T) {
	got := Format("%Y-%m-%dT%H:%M:%S%nZ", 1234567890)
	if got != "1970-01-01T00:00:01.234567890Z" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got != Format(RFC3339Nano, 1234567890) {
		t.Fatalf("RFC3339Nano layout mismatch")
	}
}

func TestFormatKnownInstants(t *testing.T) {
	tests := []struct {
		ns   uint64
		want string
	}{
		{0, "1970-01-01T00:00:00.000000000Z"},
		{1652155382000000001, "2022-05-10T04:03:02.000000001Z"},
		{19782 * day, "2024-02-29T00:00:00.000000000Z"},
		{19783*day - 1, "2024-02-29T23:59:59.999999999Z"},
		{19783 * day, "2024-03-01T00:00:00.000000000Z"},
		{11016 * day, "2000-02-29T00:00:00.000000000Z"},
		{47541 * day, "2100-03-01T00:00:00.000000000Z"},
		{^uint64(0), "2554-07-21T23:34:33.709551615Z"},
	}
	for _, tc := range tests {
		if got := Format(RFC3339Nano, tc.ns); got != tc.want {
			t.Fatalf("Format(%d) = %q want %q", tc.ns, got, tc.want)
		}
	}
}

func TestDateWalk(t *testing.T) {
	tests := []struct {
		days       uint64
		year       uint64
		month, day uint8
	}{
		{0, 1970, 1, 1},
		{30, 1970, 1, 31},
		{31, 1970, 2, 1},
		{58, 1970, 2, 28},
		{59, 1970, 3, 1},
		{364, 1970, 12, 31},
		{365, 1971, 1, 1},
		// 1972 is the first leap year after the epoch
		{365 + 365 + 59, 1972, 2, 29},
		{365 + 365 + 365, 1972, 12, 31},
		{19782, 2024, 2, 29},
		{47540, 2100, 2, 28},
	}
	for _, tc := range tests {
		y, m, d := Date(tc.days)
		if y != tc.year || m != tc.month || d != tc.day {
			t.Fatalf("Date(%d) = %d-%02d-%02d want %d-%02d-%02d", tc.days, y, m, d, tc.year, tc.month, tc.day)
		}
	}
}

func TestFormatLiteralsAndUnknownVerbs(t *testing.T) {
	ts := uint64(19782*day + 3*3600*nsPerSec)
	tests := []struct {
		layout string
		want   string
	}{
		{"%d/%m/%Y", "29/02/2024"},
		{"at %H:%M", "at 03:00"},
		{"%%", "%"},
		{"%q%z", "qz"},
		{"100%", "100%"},
		{"", ""},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := Format(tc.layout, ts); got != tc.want {
			t.Fatalf("Format(%q) = %q want %q", tc.layout, got, tc.want)
		}
	}
}

func TestFormatTruncates(t *testing.T) {
	layouts := []string{
		strings.Repeat("%Y", 40),
		strings.Repeat("x", 1000),
		"%Y-%m-%dT%H:%M:%S%nZ and then some more text",
		strings.Repeat("%n", 5),
	}
	for _, layout := range layouts {
		got := Format(layout, ^uint64(0))
		if len(got) != MaxBufSize {
			t.Fatalf("expected output capped at %d bytes, got %d (%q)", MaxBufSize, len(got), got)
		}
	}
	if got := Format(strings.Repeat("%n", 5), 1); got != ".000000001.000000001.000000001.0" {
		t.Fatalf("unexpected truncated output: %q", got)
	}
}

func TestBoundedWriter(t *testing.T) {
	var w BoundedWriter
	w.PutUint(7, 3)
	w.PutString("-")
	w.PutUint(12345, 2)
	if w.String() != "007-12345" || w.Truncated() {
		t.Fatalf("unexpected writer state: %q truncated=%t", w.String(), w.Truncated())
	}
	w.PutString(strings.Repeat("z", MaxBufSize))
	if w.Len() != MaxBufSize || !w.Truncated() {
		t.Fatalf("expected full truncated writer, len=%d truncated=%t", w.Len(), w.Truncated())
	}
}
