package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies a calendar month bucket by a structured (year, month)
// pair. The display label (e.g. "June 2025") is always derived from the key,
// never the reverse, so bucket identity does not depend on how a label was
// rendered.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyFromDate returns the MonthKey of the calendar month containing date.
func MonthKeyFromDate(date time.Time) MonthKey {
	return MonthKey{Year: date.Year(), Month: date.Month()}
}

// MonthKeyFromLabel parses a rendered month label, e.g. "June 2025". It is
// used to recover a structured key from buckets stored before keys existed.
func MonthKeyFromLabel(label string) (MonthKey, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("invalid month label: %q", label)
	}
	var month time.Month
	for m := time.January; m <= time.December; m++ {
		if m.String() == parts[0] {
			month = m
			break
		}
	}
	if month == 0 {
		return MonthKey{}, fmt.Errorf("invalid month name: %q", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid year: %w", err)
	}
	return MonthKey{Year: year, Month: month}, nil
}

// IsZero reports whether the key carries no month information.
func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Equal returns true when both the year and month match.
func (k MonthKey) Equal(other MonthKey) bool {
	return k.Year == other.Year && k.Month == other.Month
}

// Before reports whether k refers to a month that occurs before other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// After reports whether k refers to a month that occurs after other.
func (k MonthKey) After(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year > other.Year
	}
	return k.Month > other.Month
}

// Label returns the display form of the key: the full English month name
// followed by the 4-digit year, e.g. "June 2025".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", k.Month.String(), k.Year)
}

// String returns the same form as Label.
func (k MonthKey) String() string {
	return k.Label()
}
