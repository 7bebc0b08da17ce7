package stocks

import (
	"time"

	"github.com/billetterie/stockgen/timezone"
)

// BookingLimitPolicy decides the last local calendar day on which an
// occurrence may still be booked. The creation form expresses it as an
// interval before each occurrence; the edition form pins an explicit date.
type BookingLimitPolicy interface {
	limitDateFor(occurrence timezone.Date) timezone.Date
}

// DaysBefore closes bookings N days before each occurrence's start day.
// Zero means bookings stay open until the occurrence day itself.
type DaysBefore uint

func (n DaysBefore) limitDateFor(occurrence timezone.Date) timezone.Date {
	return occurrence.AddDays(-int(n))
}

// OnDate closes bookings on one fixed calendar day for every occurrence.
type OnDate struct {
	Date timezone.Date
}

func (o OnDate) limitDateFor(timezone.Date) timezone.Date {
	return o.Date
}

// ResolveBookingLimit computes the UTC instant at which bookings close for
// an occurrence starting at occDate/occTime in the given department.
//
// When the limit day is the occurrence's own day, bookings close exactly
// when the event starts, not at end of day. Any other limit day closes at
// 23:59:59 local time.
func ResolveBookingLimit(
	occDate timezone.Date, occTime timezone.TimeOfDay,
	limitDate timezone.Date,
	departmentCode string, tz *timezone.Context,
) (time.Time, error) {
	if limitDate == occDate {
		return tz.ToUTC(occDate, occTime, departmentCode)
	}
	return tz.EndOfDayUTC(limitDate, departmentCode)
}
