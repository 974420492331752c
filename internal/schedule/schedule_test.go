package schedule

import (
	"testing"
	"time"
)

func TestDateKeyUsesLocalCalendarFields(t *testing.T) {
	// 23:30 local on Jan 8 must stay Jan 8 regardless of what the instant
	// looks like in UTC.
	loc := time.FixedZone("UTC+9", 9*3600)
	d := time.Date(2024, 1, 8, 23, 30, 0, 0, loc)

	if got := DateKey(d); got != "2024-01-08" {
		t.Errorf("DateKey = %q, want 2024-01-08", got)
	}
	if got := d.UTC().Format("2006-01-02"); got == DateKey(d) {
		t.Fatalf("test setup broken: UTC date %q should differ from local date", got)
	}
}

func TestDateKeyZeroPadding(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	if got := DateKey(d); got != "2024-03-05" {
		t.Errorf("DateKey = %q, want 2024-03-05", got)
	}
}

func TestDayOfWeek(t *testing.T) {
	// 2024-01-08 is a Monday, 2024-01-14 a Sunday.
	cases := []struct {
		day  int
		want string
	}{
		{8, "Mon"}, {9, "Tue"}, {10, "Wed"}, {11, "Thu"},
		{12, "Fri"}, {13, "Sat"}, {14, "Sun"},
	}
	for _, c := range cases {
		d := time.Date(2024, 1, c.day, 12, 0, 0, 0, time.Local)
		if got := DayOfWeek(d); got != c.want {
			t.Errorf("DayOfWeek(Jan %d) = %q, want %q", c.day, got, c.want)
		}
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	d, err := ParseDateKey("2024-01-08")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if got := DateKey(d); got != "2024-01-08" {
		t.Errorf("round trip = %q, want 2024-01-08", got)
	}
	if got := DayOfWeek(d); got != "Mon" {
		t.Errorf("DayOfWeek = %q, want Mon", got)
	}

	if _, err := ParseDateKey("08/01/2024"); err == nil {
		t.Error("expected error for malformed date key")
	}
}

func TestValidDay(t *testing.T) {
	for _, d := range Days() {
		if !ValidDay(d) {
			t.Errorf("ValidDay(%q) = false", d)
		}
	}
	if ValidDay("Monday") || ValidDay("") {
		t.Error("ValidDay accepted a non-label")
	}
}
