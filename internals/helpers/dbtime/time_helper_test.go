package dbtime

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-03-09", "09/03/2024", " 2024-03-09 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got.Year() != 2024 || got.Month() != time.March || got.Day() != 9 {
			t.Fatalf("%q: got %v", in, got)
		}
	}
	for _, in := range []string{"", "2024-13-01", "9 de março"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]string{
		"08:30":    "08:30",
		"8:05:59":  "08:05",
		"14h15":    "14:15",
		"2:45 PM":  "14:45",
		"0.375":    "09:00",
		"0.5":      "12:00",
		"0.999999": "23:59",
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if s := FormatClock(&got); s != want {
			t.Errorf("%q: got %s, want %s", in, s, want)
		}
	}
	for _, in := range []string{"", "25:00", "manhã", "1.5"} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestTodayUsesBusinessTimezone(t *testing.T) {
	// 02:00 UTC is still the previous day in São Paulo (UTC-3).
	now := time.Date(2024, 5, 10, 2, 0, 0, 0, time.UTC)
	today := Today(now)
	if today.Day() != 9 {
		t.Fatalf("today = %v, want the 9th", today)
	}
	if !SameDay(now, time.Date(2024, 5, 9, 12, 0, 0, 0, Location())) {
		t.Fatal("SameDay mismatch")
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2024, time.February)
	if from.Day() != 1 || from.Month() != time.February || to.Month() != time.March || to.Day() != 1 {
		t.Fatalf("got %v .. %v", from, to)
	}
}

func TestFormatters(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if FormatBR(d) != "05/01/2024" || FormatISO(d) != "2024-01-05" {
		t.Fatalf("got %s / %s", FormatBR(d), FormatISO(d))
	}
	if FormatBR(time.Time{}) != "" || FormatClock(nil) != "" {
		t.Fatal("zero values should format empty")
	}
	c := datatypes.NewTime(7, 5, 0, 0)
	if FormatClock(&c) != "07:05" {
		t.Fatalf("clock = %s", FormatClock(&c))
	}
}
