package stocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billetterie/stockgen/timezone"
)

func TestResolveBookingLimit_SameDayCollapsesToStart(t *testing.T) {
	tz := timezone.DefaultContext()

	occDate := timezone.Date{Year: 2024, Month: time.June, Day: 1}
	occTime := timezone.TimeOfDay{Hour: 18, Minute: 0}

	limit, err := ResolveBookingLimit(occDate, occTime, occDate, "75", tz)
	require.NoError(t, err)

	start, err := tz.ToUTC(occDate, occTime, "75")
	require.NoError(t, err)

	assert.True(t, limit.Equal(start), "same-day limit must equal the event start, got %v want %v", limit, start)
}

func TestResolveBookingLimit_EarlierDayEndsAtEndOfDay(t *testing.T) {
	tz := timezone.DefaultContext()

	occDate := timezone.Date{Year: 2024, Month: time.June, Day: 10}
	occTime := timezone.TimeOfDay{Hour: 20, Minute: 30}
	limitDate := timezone.Date{Year: 2024, Month: time.June, Day: 3}

	limit, err := ResolveBookingLimit(occDate, occTime, limitDate, "75", tz)
	require.NoError(t, err)

	// 23:59:59 local on June 3rd, metropolitan offset +1.
	assert.True(t, limit.Equal(time.Date(2024, 6, 3, 22, 59, 59, 0, time.UTC)))
}

func TestResolveBookingLimit_InvalidDepartment(t *testing.T) {
	tz := timezone.DefaultContext()

	occDate := timezone.Date{Year: 2024, Month: time.June, Day: 10}
	occTime := timezone.TimeOfDay{Hour: 20, Minute: 0}

	_, err := ResolveBookingLimit(occDate, occTime, occDate, "XYZ", tz)
	require.Error(t, err)
}

func TestBookingLimitPolicies(t *testing.T) {
	occ := timezone.Date{Year: 2024, Month: time.June, Day: 10}

	tests := []struct {
		name     string
		policy   BookingLimitPolicy
		expected timezone.Date
	}{
		{
			name:     "zero days before keeps the occurrence day",
			policy:   DaysBefore(0),
			expected: occ,
		},
		{
			name:     "seven days before",
			policy:   DaysBefore(7),
			expected: timezone.Date{Year: 2024, Month: time.June, Day: 3},
		},
		{
			name:     "interval crossing a month boundary",
			policy:   DaysBefore(15),
			expected: timezone.Date{Year: 2024, Month: time.May, Day: 26},
		},
		{
			name:     "explicit date ignores the occurrence day",
			policy:   OnDate{Date: timezone.Date{Year: 2024, Month: time.May, Day: 1}},
			expected: timezone.Date{Year: 2024, Month: time.May, Day: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.limitDateFor(occ))
		})
	}
}
