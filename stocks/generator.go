package stocks

import (
	"io"
	"log/slog"
	"time"

	"github.com/billetterie/stockgen/recurrence"
	"github.com/billetterie/stockgen/timezone"
)

// Generator runs the full recurrence-to-occurrences pipeline the stocks
// dialog triggers on submit: validate and expand the rule, materialize the
// cross product against the form's current occurrences, then merge under
// the occurrence ceiling.
type Generator struct {
	engine         *recurrence.Engine
	timezones      *timezone.Context
	logger         *slog.Logger
	maxOccurrences int
}

// GeneratorConfig configures a Generator. Zero values fall back to a
// default engine, the default department table, a discarding logger and
// DefaultMaxOccurrences.
type GeneratorConfig struct {
	Engine         *recurrence.Engine
	Timezones      *timezone.Context
	Logger         *slog.Logger
	MaxOccurrences int
}

// NewGenerator creates a Generator from the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Engine == nil {
		config.Engine = recurrence.NewEngine()
	}
	if config.Timezones == nil {
		config.Timezones = timezone.DefaultContext()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.MaxOccurrences <= 0 {
		config.MaxOccurrences = DefaultMaxOccurrences
	}

	return &Generator{
		engine:         config.Engine,
		timezones:      config.Timezones,
		logger:         config.Logger,
		maxOccurrences: config.MaxOccurrences,
	}
}

// GenerationRequest is one submission of the recurrence dialog.
type GenerationRequest struct {
	Rule           recurrence.Rule
	TimeSlots      []timezone.TimeOfDay
	Assignments    []PriceCategoryAssignment
	DepartmentCode string
	BookingLimit   BookingLimitPolicy

	// Existing is the form's current occurrence list. It is read, never
	// mutated.
	Existing []Occurrence

	// Today is the reference instant for past filtering.
	Today time.Time
}

// GenerationResult carries the merged list plus the counts the calling
// screen turns into its success notification.
type GenerationResult struct {
	Occurrences       []Occurrence
	AddedCount        int
	SkippedDuplicates int
}

// AllAdded reports whether every generated occurrence made it into the
// list, i.e. none were skipped as duplicates.
func (r GenerationResult) AllAdded() bool {
	return r.SkippedDuplicates == 0
}

// Generate runs the pipeline. Validation failures surface before any
// occurrence is built; LimitExceededError is the only failure possible
// after a successful generation and leaves Existing untouched.
func (g *Generator) Generate(req GenerationRequest) (GenerationResult, error) {
	dates, err := g.engine.Expand(req.Rule)
	if err != nil {
		return GenerationResult{}, err
	}

	materialized, err := Materialize(MaterializeParams{
		Dates:          dates,
		TimeSlots:      req.TimeSlots,
		Assignments:    req.Assignments,
		DepartmentCode: req.DepartmentCode,
		BookingLimit:   req.BookingLimit,
		Existing:       req.Existing,
		Today:          req.Today,
		Timezones:      g.timezones,
	})
	if err != nil {
		return GenerationResult{}, err
	}

	merged, err := Merge(req.Existing, materialized.Added, g.maxOccurrences)
	if err != nil {
		return GenerationResult{}, err
	}

	g.logger.Info("occurrences generated",
		"department", req.DepartmentCode,
		"days", len(dates),
		"added", len(materialized.Added),
		"skipped_duplicates", materialized.SkippedDuplicates,
		"total", len(merged))

	return GenerationResult{
		Occurrences:       merged,
		AddedCount:        len(materialized.Added),
		SkippedDuplicates: materialized.SkippedDuplicates,
	}, nil
}
