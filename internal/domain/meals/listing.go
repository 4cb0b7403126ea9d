package meals

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	dateLayout = "2006-01-02"

	// MaxTextLength bounds description and notes.
	MaxTextLength = 500
)

// Window is the optional date and time-of-day slot attached to a listing.
type Window struct {
	Date  *datatypes.Date
	Start *datatypes.Time
	End   *datatypes.Time
}

// ParseWindow reads a YYYY-MM-DD (or RFC3339) date and HH:MM[:SS] times.
// Empty strings leave the corresponding field unset.
func ParseWindow(date, start, end string) (Window, error) {
	var w Window
	if s := strings.TrimSpace(date); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return Window{}, err
		}
		w.Date = &d
	}
	if s := strings.TrimSpace(start); s != "" {
		t, err := ParseClock(s)
		if err != nil {
			return Window{}, fmt.Errorf("start time: %w", err)
		}
		w.Start = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := ParseClock(s)
		if err != nil {
			return Window{}, fmt.Errorf("end time: %w", err)
		}
		w.End = &t
	}
	if w.Start != nil && w.End != nil && clockSeconds(*w.End) < clockSeconds(*w.Start) {
		return Window{}, fmt.Errorf("end time %s is before start time %s", FormatClock(w.End), FormatClock(w.Start))
	}
	return w, nil
}

func ParseDate(s string) (datatypes.Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) datatypes.Date {
	u := t.UTC()
	return datatypes.Date(time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC))
}

func ParseClock(s string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("time %q: want HH:MM", s)
}

func NewClock(hour, minute int) *datatypes.Time {
	t := datatypes.NewTime(hour, minute, 0, 0)
	return &t
}

func FormatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).UTC().Format(dateLayout)
}

func FormatClock(t *datatypes.Time) string {
	if t == nil {
		return ""
	}
	secs := clockSeconds(*t)
	return fmt.Sprintf("%02d:%02d", secs/3600, (secs%3600)/60)
}

func clockSeconds(t datatypes.Time) int64 {
	return int64(time.Duration(t) / time.Second)
}

// CleanText trims free text and rejects values over MaxTextLength runes.
func CleanText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := len([]rune(s)); n > MaxTextLength {
		return "", fmt.Errorf("%s is %d characters, max %d", field, n, MaxTextLength)
	}
	return s, nil
}
