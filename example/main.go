// Command example generates the stocks for a fictional weekly concert and
// prints the resulting schedule plus its iCalendar export. It mirrors what
// the pro portal does when a user submits the recurrence dialog.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/mo"

	"github.com/billetterie/stockgen/recurrence"
	"github.com/billetterie/stockgen/stocks"
	"github.com/billetterie/stockgen/timezone"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	engine := recurrence.NewEngine()
	defer engine.Close()

	generator := stocks.NewGenerator(stocks.GeneratorConfig{
		Engine: engine,
		Logger: logger,
	})

	// Every Friday and Saturday evening of June 2024, two price
	// categories, bookings closing two days before each show.
	rule := recurrence.Weekly{
		Start:    timezone.NewDate(2024, time.June, 1),
		End:      timezone.NewDate(2024, time.June, 30),
		Weekdays: []time.Weekday{time.Friday, time.Saturday},
	}

	result, err := generator.Generate(stocks.GenerationRequest{
		Rule:      rule,
		TimeSlots: []timezone.TimeOfDay{{Hour: 20, Minute: 30}},
		Assignments: []stocks.PriceCategoryAssignment{
			{PriceCategoryID: 1, Quantity: mo.Some(200)},   // orchestre
			{PriceCategoryID: 2, Quantity: mo.None[int]()}, // balcon, unlimited
		},
		DepartmentCode: "75",
		BookingLimit:   stocks.DaysBefore(2),
		Today:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}

	if result.AllAdded() {
		fmt.Printf("%d occurrences added\n", result.AddedCount)
	} else {
		fmt.Printf("%d occurrences added, %d skipped as duplicates\n",
			result.AddedCount, result.SkippedDuplicates)
	}

	for _, occ := range result.Occurrences {
		qty := "unlimited"
		if n, ok := occ.RemainingQuantity.Get(); ok {
			qty = fmt.Sprintf("%d seats", n)
		}
		fmt.Printf("  %s %s  category %d  %s  bookings until %s\n",
			occ.LocalDate, occ.LocalTime, occ.PriceCategoryID, qty,
			occ.BookingLimitUTC.Format(time.RFC3339))
	}

	ics, err := stocks.ExportICS("Concert d'été", result.Occurrences)
	if err != nil {
		logger.Error("ics export failed", "error", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Print(ics)
}
