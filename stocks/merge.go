package stocks

import (
	"fmt"
)

// DefaultMaxOccurrences is the ceiling on how many occurrences a single
// offer may carry, matching the batch size the stocks API accepts.
const DefaultMaxOccurrences = 1000

// LimitExceededError reports a merge that would push an offer past its
// occurrence ceiling. Nothing is merged when it is returned.
type LimitExceededError struct {
	Attempted int
	Limit     int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("occurrence_limit_exceeded: %d occurrences requested, limit is %d", e.Attempted, e.Limit)
}

// Merge appends newly generated occurrences to the caller's list, existing
// first, then the new ones in their generated order. The merge is
// all-or-nothing: if the combined count exceeds maxTotal the input lists
// are left untouched and a LimitExceededError is returned. Neither input
// slice is mutated; the merged list is freshly allocated.
func Merge(existing, added []Occurrence, maxTotal int) ([]Occurrence, error) {
	total := len(existing) + len(added)
	if total > maxTotal {
		return nil, &LimitExceededError{Attempted: total, Limit: maxTotal}
	}

	merged := make([]Occurrence, 0, total)
	merged = append(merged, existing...)
	merged = append(merged, added...)
	return merged, nil
}
