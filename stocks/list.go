package stocks

import (
	"github.com/samber/mo"
)

// List is the working list an offer form holds while the user edits
// occurrences. It remembers which persisted stocks were removed so the
// caller can issue the matching DELETE calls when it submits the batch.
// A List belongs to a single goroutine, like the form state it mirrors.
type List struct {
	occurrences     []Occurrence
	deletedStockIDs []int64
}

// NewList starts a working list from the occurrences loaded for the offer.
func NewList(existing []Occurrence) *List {
	occ := make([]Occurrence, len(existing))
	copy(occ, existing)
	return &List{occurrences: occ}
}

// Occurrences returns the current list, existing entries first, generated
// entries after, in the order they were merged.
func (l *List) Occurrences() []Occurrence {
	occ := make([]Occurrence, len(l.occurrences))
	copy(occ, l.occurrences)
	return occ
}

// Len returns the number of occurrences currently held.
func (l *List) Len() int {
	return len(l.occurrences)
}

// MergeGenerated merges a materialization result into the list under the
// given ceiling. On LimitExceededError the list is unchanged.
func (l *List) MergeGenerated(result MaterializeResult, maxTotal int) error {
	merged, err := Merge(l.occurrences, result.Added, maxTotal)
	if err != nil {
		return err
	}
	l.occurrences = merged
	return nil
}

// RemoveAt drops the occurrence at index i. If it was already persisted,
// its stock ID is recorded for deletion at submit time. Out-of-range
// indexes are ignored.
func (l *List) RemoveAt(i int) {
	if i < 0 || i >= len(l.occurrences) {
		return
	}
	if id, ok := l.occurrences[i].StockID.Get(); ok {
		l.deletedStockIDs = append(l.deletedStockIDs, id)
	}
	l.occurrences = append(l.occurrences[:i], l.occurrences[i+1:]...)
}

// RemoveStock drops the occurrence carrying the given persisted stock ID
// and records it for deletion. It reports whether the ID was found.
func (l *List) RemoveStock(stockID int64) bool {
	for i, occ := range l.occurrences {
		if occ.StockID == mo.Some(stockID) {
			l.RemoveAt(i)
			return true
		}
	}
	return false
}

// DeletedStockIDs returns the persisted stock IDs removed from the list
// since it was created, in removal order.
func (l *List) DeletedStockIDs() []int64 {
	ids := make([]int64, len(l.deletedStockIDs))
	copy(ids, l.deletedStockIDs)
	return ids
}
