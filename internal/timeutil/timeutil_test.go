package timeutil

import (
	"testing"
	"time"
)

func TestFormatParseRoundTrip(t *testing.T) {
	orig := time.Date(2025, 8, 23, 14, 7, 31, 250_000_000, time.FixedZone("", 2*3600))
	s := Format(orig)
	if s != "2025-08-23 14:07:31.250 +0200" {
		t.Fatalf("Format = %q", s)
	}
	back, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(orig) {
		t.Errorf("round trip: %v != %v", back, orig)
	}
}

func TestFormat_MillisecondsAlwaysPresent(t *testing.T) {
	whole := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if s := Format(whole); s != "2025-01-02 03:04:05.000 +0000" {
		t.Errorf("Format = %q", s)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("2025-08-23T14:07:31Z"); err == nil {
		t.Error("RFC3339 input should not parse")
	}
}
