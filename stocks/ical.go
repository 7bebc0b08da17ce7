package stocks

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// ExportCalendar renders a list of occurrences as an iCalendar object, one
// VEVENT per occurrence. Venue staff subscribe their planning tools to the
// result; it is not the API submission format. All instants are emitted in
// UTC. Each VEVENT gets a fresh UID.
func ExportCalendar(summary string, occurrences []Occurrence) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//billetterie//stockgen//FR")

	for _, occ := range occurrences {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, uuid.New().String())
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, occ.StartUTC)
		event.Props.SetDateTime("X-BOOKING-LIMIT", occ.BookingLimitUTC)
		event.Props.SetText("X-PRICE-CATEGORY-ID", strconv.FormatInt(occ.PriceCategoryID, 10))
		if qty, ok := occ.RemainingQuantity.Get(); ok {
			event.Props.SetText("X-REMAINING-QUANTITY", strconv.Itoa(qty))
		}
		cal.Children = append(cal.Children, event.Component)
	}

	return cal
}

// ExportICS encodes the occurrences as an ICS document.
func ExportICS(summary string, occurrences []Occurrence) (string, error) {
	cal := ExportCalendar(summary, occurrences)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}
