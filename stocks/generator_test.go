package stocks

import (
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billetterie/stockgen/recurrence"
	"github.com/billetterie/stockgen/timezone"
)

func newTestGenerator(maxOccurrences int) *Generator {
	return NewGenerator(GeneratorConfig{
		Engine:         recurrence.NewEngineWithConfig(recurrence.DisabledCacheConfig),
		MaxOccurrences: maxOccurrences,
	})
}

func TestGenerator_Generate_WeeklyEndToEnd(t *testing.T) {
	gen := newTestGenerator(0)

	result, err := gen.Generate(GenerationRequest{
		Rule: recurrence.Weekly{
			Start:    date(2024, time.January, 1),
			End:      date(2024, time.January, 31),
			Weekdays: []time.Weekday{time.Monday, time.Wednesday},
		},
		TimeSlots: []timezone.TimeOfDay{at(19, 0)},
		Assignments: []PriceCategoryAssignment{
			{PriceCategoryID: 1, Quantity: mo.Some(100)},
		},
		DepartmentCode: "75",
		BookingLimit:   DaysBefore(2),
		Today:          time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 10 Mondays and Wednesdays in January 2024.
	assert.Equal(t, 10, result.AddedCount)
	assert.Equal(t, 0, result.SkippedDuplicates)
	assert.True(t, result.AllAdded())
	require.Len(t, result.Occurrences, 10)

	first := result.Occurrences[0]
	assert.Equal(t, date(2024, time.January, 1), first.LocalDate)
	assert.True(t, first.StartUTC.Equal(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)))
	assert.True(t, first.BookingLimitUTC.Equal(time.Date(2023, 12, 30, 22, 59, 59, 0, time.UTC)))
}

func TestGenerator_Generate_ReportsDuplicates(t *testing.T) {
	gen := newTestGenerator(0)

	existing := []Occurrence{{
		LocalDate:       date(2024, time.June, 1),
		LocalTime:       at(19, 0),
		PriceCategoryID: 1,
		StockID:         mo.Some[int64](7),
	}}

	result, err := gen.Generate(GenerationRequest{
		Rule:           recurrence.Daily{Start: date(2024, time.June, 1), End: date(2024, time.June, 3)},
		TimeSlots:      []timezone.TimeOfDay{at(19, 0)},
		Assignments:    []PriceCategoryAssignment{{PriceCategoryID: 1, Quantity: mo.Some(10)}},
		DepartmentCode: "75",
		BookingLimit:   DaysBefore(0),
		Existing:       existing,
		Today:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.AddedCount)
	assert.Equal(t, 1, result.SkippedDuplicates)
	assert.False(t, result.AllAdded())
	// Existing first, then the generated ones.
	require.Len(t, result.Occurrences, 3)
	assert.Equal(t, mo.Some[int64](7), result.Occurrences[0].StockID)
	assert.Equal(t, date(2024, time.June, 2), result.Occurrences[1].LocalDate)
}

func TestGenerator_Generate_InvalidRuleFailsBeforeMaterialization(t *testing.T) {
	gen := newTestGenerator(0)

	_, err := gen.Generate(GenerationRequest{
		Rule:           recurrence.Weekly{Start: date(2024, time.June, 1), End: date(2024, time.June, 30)},
		TimeSlots:      []timezone.TimeOfDay{at(19, 0)},
		Assignments:    []PriceCategoryAssignment{{PriceCategoryID: 1, Quantity: mo.Some(10)}},
		DepartmentCode: "75",
		BookingLimit:   DaysBefore(0),
		Today:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var recErr *recurrence.Error
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, recurrence.ErrInvalidConfiguration, recErr.Type)
}

func TestGenerator_Generate_CeilingAborts(t *testing.T) {
	gen := newTestGenerator(5)

	existing := makeOccurrences(4, 1)

	_, err := gen.Generate(GenerationRequest{
		Rule:           recurrence.Daily{Start: date(2024, time.July, 1), End: date(2024, time.July, 3)},
		TimeSlots:      []timezone.TimeOfDay{at(19, 0)},
		Assignments:    []PriceCategoryAssignment{{PriceCategoryID: 1, Quantity: mo.Some(10)}},
		DepartmentCode: "75",
		BookingLimit:   DaysBefore(0),
		Existing:       existing,
		Today:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var limitErr *LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 7, limitErr.Attempted)
	assert.Equal(t, 5, limitErr.Limit)
	assert.Len(t, existing, 4, "existing list is untouched on failure")
}

func TestGenerator_Generate_OverseasDepartment(t *testing.T) {
	gen := newTestGenerator(0)

	result, err := gen.Generate(GenerationRequest{
		Rule:           recurrence.Unique{Date: date(2024, time.June, 1)},
		TimeSlots:      []timezone.TimeOfDay{at(20, 0)},
		Assignments:    []PriceCategoryAssignment{{PriceCategoryID: 1, Quantity: mo.None[int]()}},
		DepartmentCode: "974",
		BookingLimit:   DaysBefore(0),
		Today:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, result.Occurrences, 1)
	// 20:00 at La Réunion (UTC+4) is 16:00 UTC.
	assert.True(t, result.Occurrences[0].StartUTC.Equal(time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)))
}
