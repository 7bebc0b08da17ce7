// Package stocks materializes recurring-event stocks: given the calendar
// days a recurrence expands to, the show times and the price categories of
// an offer, it builds concrete occurrence records with UTC start and
// booking-limit instants, deduplicates them against the occurrences a form
// already holds, and merges the result under a total-count ceiling.
//
// The package is pure: every function takes its full input (including the
// "today" reference used for past filtering) and returns new values. The
// caller owns the working list and the eventual batch API submission.
package stocks

import (
	"time"

	"github.com/samber/mo"

	"github.com/billetterie/stockgen/timezone"
)

// Occurrence is one concrete dated-and-timed instance of an event offer,
// with its own price category and quantity. LocalDate and LocalTime are the
// wall-clock values the user picked; StartUTC is what the API stores.
type Occurrence struct {
	LocalDate timezone.Date
	LocalTime timezone.TimeOfDay

	StartUTC        time.Time
	BookingLimitUTC time.Time

	PriceCategoryID int64

	// RemainingQuantity is None for unlimited stock.
	RemainingQuantity mo.Option[int]
	BookingsQuantity  int

	// StockID is present only for occurrences that already exist server-side.
	StockID mo.Option[int64]
}

// key is the identity under which occurrences are deduplicated: two
// occurrences on the same local day, at the same local time, for the same
// price category are the same stock.
func (o Occurrence) key() occurrenceKey {
	return occurrenceKey{
		date:            o.LocalDate,
		time:            o.LocalTime,
		priceCategoryID: o.PriceCategoryID,
	}
}

type occurrenceKey struct {
	date            timezone.Date
	time            timezone.TimeOfDay
	priceCategoryID int64
}

// PriceCategoryAssignment pairs a price category with the quantity to open
// for each generated occurrence. A None quantity means unlimited.
type PriceCategoryAssignment struct {
	PriceCategoryID int64
	Quantity        mo.Option[int]
}
