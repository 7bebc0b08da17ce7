package stocks

import (
	"fmt"
	"sort"
	"time"

	"github.com/billetterie/stockgen/timezone"
)

// MaterializeParams carries everything Materialize needs. Today is injected
// rather than read from the clock so generation stays deterministic.
type MaterializeParams struct {
	Dates          []timezone.Date
	TimeSlots      []timezone.TimeOfDay
	Assignments    []PriceCategoryAssignment
	DepartmentCode string
	BookingLimit   BookingLimitPolicy
	Existing       []Occurrence
	Today          time.Time

	// Timezones defaults to timezone.DefaultContext() when nil.
	Timezones *timezone.Context
}

// MaterializeResult reports the occurrences built by one Materialize call.
// Duplicates are routine, not errors: they are counted so the caller can
// tell the user how many rows were skipped.
type MaterializeResult struct {
	Added             []Occurrence
	SkippedDuplicates int
}

// Materialize builds one candidate occurrence for every (date, time slot,
// price assignment) combination and filters it:
//
//   - candidates starting strictly before Today are dropped silently;
//   - candidates whose (local day, local time, price category) identity
//     already exists — in Existing or earlier in this same call — are
//     dropped and counted as duplicates;
//   - everything else becomes a new, unbooked Occurrence without a StockID.
//
// Candidates are visited date-ascending, then in time-slot input order,
// then in assignment input order. Existing is never mutated.
func Materialize(p MaterializeParams) (MaterializeResult, error) {
	tz := p.Timezones
	if tz == nil {
		tz = timezone.DefaultContext()
	}
	if p.BookingLimit == nil {
		return MaterializeResult{}, fmt.Errorf("booking limit policy is required")
	}

	dates := make([]timezone.Date, len(p.Dates))
	copy(dates, p.Dates)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	seen := make(map[occurrenceKey]bool, len(p.Existing))
	for _, occ := range p.Existing {
		seen[occ.key()] = true
	}

	var result MaterializeResult
	for _, date := range dates {
		for _, slot := range p.TimeSlots {
			for _, assignment := range p.Assignments {
				startUTC, err := tz.ToUTC(date, slot, p.DepartmentCode)
				if err != nil {
					return MaterializeResult{}, err
				}

				// Already-past occurrences are not applicable, not errors
				// and not duplicates.
				if startUTC.Before(p.Today) {
					continue
				}

				candidate := Occurrence{
					LocalDate:         date,
					LocalTime:         slot,
					StartUTC:          startUTC,
					PriceCategoryID:   assignment.PriceCategoryID,
					RemainingQuantity: assignment.Quantity,
					BookingsQuantity:  0,
				}

				if seen[candidate.key()] {
					result.SkippedDuplicates++
					continue
				}

				limitDate := p.BookingLimit.limitDateFor(date)
				candidate.BookingLimitUTC, err = ResolveBookingLimit(date, slot, limitDate, p.DepartmentCode, tz)
				if err != nil {
					return MaterializeResult{}, err
				}

				seen[candidate.key()] = true
				result.Added = append(result.Added, candidate)
			}
		}
	}

	return result, nil
}
