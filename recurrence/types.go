package recurrence

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/billetterie/stockgen/timezone"
)

// Error types
type ErrorType string

const (
	ErrInvalidConfiguration ErrorType = "invalid_recurrence_configuration"
)

// Error represents an invalid recurrence rule
type Error struct {
	Type    ErrorType
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Rule describes which calendar days a recurring event happens on. It is a
// closed union: the only implementations are Unique, Daily, Weekly and
// Monthly, and the engine matches them exhaustively.
type Rule interface {
	// Validate checks the rule's own invariants and returns an
	// ErrInvalidConfiguration error when they do not hold.
	Validate() error

	// signature is a canonical string form, unique per distinct rule.
	// It both seals the interface and keys the expansion cache.
	signature() string
}

// Unique is a single occurrence on one calendar day.
type Unique struct {
	Date timezone.Date
}

func (r Unique) Validate() error {
	if r.Date.IsZero() {
		return &Error{Type: ErrInvalidConfiguration, Message: "unique recurrence has no date"}
	}
	return nil
}

func (r Unique) signature() string {
	return "unique|" + r.Date.String()
}

// Daily repeats every day between Start and End inclusive.
type Daily struct {
	Start timezone.Date
	End   timezone.Date
}

func (r Daily) Validate() error {
	return validateRange(r.Start, r.End)
}

func (r Daily) signature() string {
	return fmt.Sprintf("daily|%s|%s", r.Start, r.End)
}

// Weekly repeats on a set of weekdays between Start and End inclusive.
// Weekdays must be non-empty; duplicates are tolerated and collapsed.
type Weekly struct {
	Start    timezone.Date
	End      timezone.Date
	Weekdays []time.Weekday
}

func (r Weekly) Validate() error {
	if err := validateRange(r.Start, r.End); err != nil {
		return err
	}
	if len(r.Weekdays) == 0 {
		return &Error{Type: ErrInvalidConfiguration, Message: "weekly recurrence needs at least one weekday"}
	}
	for _, wd := range r.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return &Error{Type: ErrInvalidConfiguration, Message: fmt.Sprintf("invalid weekday %d", wd)}
		}
	}
	return nil
}

func (r Weekly) signature() string {
	days := r.normalizedWeekdays()
	names := make([]string, len(days))
	for i, wd := range days {
		names[i] = wd.String()[:2]
	}
	return fmt.Sprintf("weekly|%s|%s|%s", r.Start, r.End, strings.Join(names, ","))
}

// normalizedWeekdays returns the weekday set deduplicated and sorted
// Sunday-first.
func (r Weekly) normalizedWeekdays() []time.Weekday {
	seen := make(map[time.Weekday]bool, len(r.Weekdays))
	var days []time.Weekday
	for _, wd := range r.Weekdays {
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// MonthlyOption selects how a Monthly rule picks its day in each month.
type MonthlyOption int

const (
	// SameDayOfMonth repeats on Start's day-of-month. Months too short to
	// contain that day are skipped, never clamped to their last day.
	SameDayOfMonth MonthlyOption = iota
	// NthWeekday repeats on the nth occurrence of Start's weekday, where n
	// is Start's position within its own month (first Monday, third Friday,
	// …). Months lacking an nth occurrence are skipped.
	NthWeekday
	// LastWeekday repeats on the last occurrence of Start's weekday in each
	// month. Start itself must be the last such weekday of its month.
	LastWeekday
)

func (o MonthlyOption) String() string {
	switch o {
	case SameDayOfMonth:
		return "same_day_of_month"
	case NthWeekday:
		return "nth_weekday"
	case LastWeekday:
		return "last_weekday"
	default:
		return fmt.Sprintf("monthly_option(%d)", int(o))
	}
}

// Monthly repeats once a month between Start and End inclusive, on the day
// selected by Option relative to Start.
type Monthly struct {
	Start  timezone.Date
	End    timezone.Date
	Option MonthlyOption
}

func (r Monthly) Validate() error {
	if err := validateRange(r.Start, r.End); err != nil {
		return err
	}
	switch r.Option {
	case SameDayOfMonth, NthWeekday:
		return nil
	case LastWeekday:
		// The form only offers this option when the start date already is
		// the last such weekday of its month; re-check rather than trust it.
		if r.Start.AddDays(7).Month == r.Start.Month {
			return &Error{
				Type:    ErrInvalidConfiguration,
				Message: fmt.Sprintf("%s is not the last %s of its month", r.Start, r.Start.Weekday()),
			}
		}
		return nil
	default:
		return &Error{Type: ErrInvalidConfiguration, Message: fmt.Sprintf("unknown monthly option %d", int(r.Option))}
	}
}

func (r Monthly) signature() string {
	return fmt.Sprintf("monthly|%s|%s|%s", r.Start, r.End, r.Option)
}

func validateRange(start, end timezone.Date) error {
	if start.IsZero() || end.IsZero() {
		return &Error{Type: ErrInvalidConfiguration, Message: "recurrence range is missing a bound"}
	}
	if start.After(end) {
		return &Error{
			Type:    ErrInvalidConfiguration,
			Message: fmt.Sprintf("start date %s is after end date %s", start, end),
		}
	}
	return nil
}
