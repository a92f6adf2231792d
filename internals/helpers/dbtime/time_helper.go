// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
)

var (
	locMu sync.RWMutex
	loc   = mustLoad("America/Sao_Paulo")
)

func mustLoad(name string) *time.Location {
	if l, err := time.LoadLocation(name); err == nil {
		return l
	}
	return time.FixedZone("BRT", -3*60*60)
}

// SetLocation sets the business timezone used for "today" and day boundaries.
func SetLocation(name string) error {
	l, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	locMu.Lock()
	loc = l
	locMu.Unlock()
	return nil
}

func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return loc
}

// DateOf truncates t to midnight of its civil day in the business timezone.
func DateOf(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
}

func Today(now time.Time) time.Time { return DateOf(now) }

func SameDay(a, b time.Time) bool {
	a, b = DateOf(a), DateOf(b)
	return a.Equal(b)
}

// MonthRange returns [first day, first day of next month).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, Location())
	return start, start.AddDate(0, 1, 0)
}

// ParseDate accepts YYYY-MM-DD or dd/mm/yyyy.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, s, Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}

// ParseClock accepts "HH:mm", "HH:mm:ss", 12-hour clock and also spreadsheet
// fractions of a day ("0.375").
func ParseClock(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("horário vazio")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f < 1 {
		secs := min(int(f*86400+0.5), 86399) // 0.999999 would round to 24:00
		return datatypes.NewTime(secs/3600, (secs%3600)/60, secs%60, 0), nil
	}
	for _, layout := range []string{"15:04", "15:04:05", "15h04", "3:04 PM", "3:04:05 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("horário inválido: %q", s)
}

func FormatBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatClock renders a datatypes.Time as HH:mm.
func FormatClock(t *datatypes.Time) string {
	if t == nil {
		return ""
	}
	d := time.Duration(*t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
