// Package recurrence expands a recurrence rule into the ordered list of
// calendar days it covers. Rules are closed-range by construction (a single
// day, or an inclusive start/end window), so every expansion is finite and
// deterministic.
package recurrence

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/billetterie/stockgen/timezone"
)

// Engine expands recurrence rules, optionally caching results.
type Engine struct {
	cache  *ExpansionCache
	logger *slog.Logger
}

// NewEngine creates an engine with the default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// NewEngineWithConfig creates an engine with a custom configuration.
func NewEngineWithConfig(config EngineConfig) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var cache *ExpansionCache
	if config.CacheEnabled {
		cache = NewExpansionCache(config.CacheConfig)
	}

	return &Engine{
		cache:  cache,
		logger: logger,
	}
}

// Close releases the engine's cache resources. Safe to call on an engine
// without a cache.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// Expand returns every calendar day the rule covers, ascending. The result
// is a pure function of the rule: identical rules always produce identical
// sequences.
func (e *Engine) Expand(rule Rule) ([]timezone.Date, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	// Single-day rules need no rrule machinery.
	if u, ok := rule.(Unique); ok {
		return []timezone.Date{u.Date}, nil
	}

	key := rule.signature()
	if e.cache != nil {
		if dates, ok := e.cache.Get(key); ok {
			e.logger.Debug("recurrence expansion served from cache", "rule", key, "days", len(dates))
			return dates, nil
		}
	}

	opt, err := compileROption(rule)
	if err != nil {
		return nil, err
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule %q: %w", key, err)
	}

	occurrences := r.All()
	dates := make([]timezone.Date, len(occurrences))
	for i, t := range occurrences {
		dates[i] = timezone.DateOf(t)
	}

	if e.cache != nil {
		e.cache.Set(key, dates)
	}

	e.logger.Debug("recurrence expanded", "rule", key, "days", len(dates))
	return dates, nil
}

// rruleWeekdays maps time.Weekday onto rrule-go's weekday constants.
var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// compileROption translates a validated ranged rule into rrule options.
// Dtstart and Until are midnight UTC; rrule's UNTIL is inclusive, so the
// end date itself can still produce an occurrence.
func compileROption(rule Rule) (rrule.ROption, error) {
	switch r := rule.(type) {
	case Daily:
		return rrule.ROption{
			Freq:    rrule.DAILY,
			Dtstart: midnightUTC(r.Start),
			Until:   midnightUTC(r.End),
		}, nil

	case Weekly:
		days := r.normalizedWeekdays()
		byweekday := make([]rrule.Weekday, len(days))
		for i, wd := range days {
			byweekday[i] = rruleWeekdays[wd]
		}
		return rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   midnightUTC(r.Start),
			Until:     midnightUTC(r.End),
			Byweekday: byweekday,
		}, nil

	case Monthly:
		opt := rrule.ROption{
			Freq:    rrule.MONTHLY,
			Dtstart: midnightUTC(r.Start),
			Until:   midnightUTC(r.End),
		}
		switch r.Option {
		case SameDayOfMonth:
			// Months shorter than this day are skipped by RFC 5545
			// semantics, which is exactly the policy we want.
			opt.Bymonthday = []int{r.Start.Day}
		case NthWeekday:
			nth := (r.Start.Day-1)/7 + 1
			wd := rruleWeekdays[r.Start.Weekday()]
			opt.Byweekday = []rrule.Weekday{wd.Nth(nth)}
		case LastWeekday:
			wd := rruleWeekdays[r.Start.Weekday()]
			opt.Byweekday = []rrule.Weekday{wd.Nth(-1)}
		}
		return opt, nil

	default:
		return rrule.ROption{}, &Error{
			Type:    ErrInvalidConfiguration,
			Message: fmt.Sprintf("unsupported rule type %T", rule),
		}
	}
}

func midnightUTC(d timezone.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
