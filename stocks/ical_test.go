package stocks

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billetterie/stockgen/timezone"
)

func TestExportCalendar(t *testing.T) {
	occurrences := []Occurrence{
		{
			LocalDate:         timezone.NewDate(2024, time.June, 1),
			LocalTime:         timezone.TimeOfDay{Hour: 20},
			StartUTC:          time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
			BookingLimitUTC:   time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
			PriceCategoryID:   3,
			RemainingQuantity: mo.Some(120),
		},
		{
			LocalDate:       timezone.NewDate(2024, time.June, 8),
			LocalTime:       timezone.TimeOfDay{Hour: 20},
			StartUTC:        time.Date(2024, 6, 8, 18, 0, 0, 0, time.UTC),
			BookingLimitUTC: time.Date(2024, 6, 7, 21, 59, 59, 0, time.UTC),
			PriceCategoryID: 3,
			// unlimited quantity
		},
	}

	cal := ExportCalendar("Concert au théâtre", occurrences)

	events := cal.Events()
	require.Len(t, events, 2)

	uids := map[string]bool{}
	for _, event := range events {
		uidProp := event.Props.Get(ical.PropUID)
		require.NotNil(t, uidProp)
		uids[uidProp.Value] = true

		summary := event.Props.Get(ical.PropSummary)
		require.NotNil(t, summary)
		assert.Equal(t, "Concert au théâtre", summary.Value)

		start, err := event.Props.DateTime(ical.PropDateTimeStart, time.UTC)
		require.NoError(t, err)
		assert.False(t, start.IsZero())
	}
	assert.Len(t, uids, 2, "each occurrence gets its own UID")

	first := events[0]
	pc := first.Props.Get("X-PRICE-CATEGORY-ID")
	require.NotNil(t, pc)
	assert.Equal(t, "3", pc.Value)
	qty := first.Props.Get("X-REMAINING-QUANTITY")
	require.NotNil(t, qty)
	assert.Equal(t, "120", qty.Value)

	second := events[1]
	assert.Nil(t, second.Props.Get("X-REMAINING-QUANTITY"), "unlimited stock has no quantity property")
}

func TestExportICS(t *testing.T) {
	occurrences := []Occurrence{
		{
			LocalDate:       timezone.NewDate(2024, time.June, 1),
			LocalTime:       timezone.TimeOfDay{Hour: 20},
			StartUTC:        time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
			BookingLimitUTC: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
			PriceCategoryID: 1,
		},
	}

	ics, err := ExportICS("Spectacle", occurrences)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "BEGIN:VEVENT")
	assert.Contains(t, ics, "SUMMARY:Spectacle")
	assert.Contains(t, ics, "DTSTART:20240601T180000Z")
	assert.Contains(t, ics, "END:VCALENDAR")
}
