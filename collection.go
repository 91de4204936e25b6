package deck

import (
	"fmt"
	"strings"
)

// The helpers below edit a record collection. Each returns a new slice and
// leaves its input untouched, so a caller can keep the previous collection
// until the new one has been saved.

// Visible returns the records that are not hidden, in order.
func Visible(records []Record) []Record {
	return filter(records, IsVisible)
}

// Find returns the record with the given ID.
func Find(records []Record, id int64) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func indexOf(records []Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps in rec for the record with the same ID.
// Returns ErrRecordNotFound if no record has rec.ID.
func Replace(records []Record, rec Record) ([]Record, error) {
	i := indexOf(records, rec.ID)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", ErrRecordNotFound, rec.ID)
	}
	out := make([]Record, len(records))
	copy(out, records)
	out[i] = rec
	return out, nil
}

// Remove deletes the record with the given ID. A collection is never
// emptied: removing from a single-record collection returns ErrLastRecord.
func Remove(records []Record, id int64) ([]Record, error) {
	i := indexOf(records, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("%w: id %d", ErrLastRecord, id)
	}
	out := make([]Record, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...), nil
}

// SetHidden sets the visibility flag of the record with the given ID.
func SetHidden(records []Record, id int64, hidden bool) ([]Record, error) {
	rec, ok := Find(records, id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
	}
	rec.Hidden = hidden
	return Replace(records, rec)
}

// Add appends rec with a fresh ID (one more than the largest ID present, or
// 1 for an empty collection). The ID of rec is ignored.
func Add(records []Record, rec Record) []Record {
	var maxID int64
	for _, r := range records {
		maxID = max(maxID, r.ID)
	}
	rec.ID = maxID + 1
	out := make([]Record, 0, len(records)+1)
	out = append(out, records...)
	return append(out, rec)
}

// Filter returns the records whose title in lang contains term,
// case-insensitively. An empty term matches everything; whitespace is part
// of the term.
func Filter(records []Record, term string, lang Language) []Record {
	term = strings.ToLower(term)
	if term == "" {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	return filter(records, func(r Record) bool {
		return strings.Contains(strings.ToLower(r.Title(lang)), term)
	})
}

// Validate checks that every record has a distinct ID.
func Validate(records []Record) error {
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
