package deck

import "github.com/willf/bitset"

// Session is the state of one browsing pass over a shuffled collection.
//
// The zero value is an empty session. Sessions are produced by
// Sampler.Initialize and advanced by the Sampler's transition methods; all
// of them return a new Session and leave the receiver untouched.
type Session struct {
	// ID identifies the session in logs. Empty for the zero value.
	ID string

	sequence []Record      // fixed for the session's lifetime.
	visited  *bitset.BitSet // positions already shown; never shrinks.
	cursor   int
}

func newSession(id string, sequence []Record) Session {
	s := Session{
		ID:       id,
		sequence: sequence,
		visited:  bitset.New(uint(len(sequence))),
	}
	if len(sequence) > 0 {
		s.visited.Set(0)
	}
	return s
}

// clone returns a copy whose visited set can be modified without affecting s.
// The sequence is shared: it is never written after construction.
func (s Session) clone() Session {
	out := s
	if s.visited != nil {
		out.visited = s.visited.Clone()
	} else {
		out.visited = bitset.New(uint(len(s.sequence)))
	}
	out.cursor = s.clampedCursor()
	return out
}

// clampedCursor keeps the cursor inside [0, len(sequence)).
func (s Session) clampedCursor() int {
	switch {
	case len(s.sequence) == 0 || s.cursor < 0:
		return 0
	case s.cursor >= len(s.sequence):
		return len(s.sequence) - 1
	default:
		return s.cursor
	}
}

// Len returns the number of cards in the session.
func (s Session) Len() int {
	return len(s.sequence)
}

// IsEmpty reports whether the session has no cards. An empty session is a
// valid state that the display must render explicitly.
func (s Session) IsEmpty() bool {
	return len(s.sequence) == 0
}

// Cursor returns the position of the current card. It is 0 for an empty
// session.
func (s Session) Cursor() int {
	return s.clampedCursor()
}

// Current returns the card at the cursor. ok is false for an empty session.
func (s Session) Current() (rec Record, ok bool) {
	return s.At(s.clampedCursor())
}

// At returns the card at position pos. ok is false when pos is out of range.
func (s Session) At(pos int) (rec Record, ok bool) {
	if pos < 0 || pos >= len(s.sequence) {
		return Record{}, false
	}
	return s.sequence[pos], true
}

// Sequence returns a copy of the session's card order.
func (s Session) Sequence() []Record {
	out := make([]Record, len(s.sequence))
	copy(out, s.sequence)
	return out
}

// VisitedCount returns the number of distinct positions shown so far.
func (s Session) VisitedCount() int {
	if s.visited == nil {
		return 0
	}
	return int(s.visited.Count())
}

// Visited returns the positions shown so far, ascending.
func (s Session) Visited() []int {
	out := make([]int, 0, s.VisitedCount())
	for i := range s.sequence {
		if s.Seen(i) {
			out = append(out, i)
		}
	}
	return out
}

// Seen reports whether position pos has been shown in this session.
func (s Session) Seen(pos int) bool {
	if s.visited == nil || pos < 0 || pos >= len(s.sequence) {
		return false
	}
	return s.visited.Test(uint(pos))
}

// Progress returns the share of cards shown so far, in percent:
// 100 * VisitedCount / Len. It is 0 for an empty session.
func (s Session) Progress() float64 {
	if len(s.sequence) == 0 {
		return 0
	}
	return float64(s.VisitedCount()) / float64(len(s.sequence)) * 100
}

// Phase reports whether the session is still exploring unseen cards.
// Empty sessions are Completed: there is nothing left to show.
func (s Session) Phase() Phase {
	if s.VisitedCount() < len(s.sequence) {
		return Exploring
	}
	return Completed
}

// CanRetreat reports whether Retreat would move the cursor.
func (s Session) CanRetreat() bool {
	return s.clampedCursor() > 0
}

// CanAdvance reports whether Advance would change the session. It is false
// for an empty session and for a completed session sitting on its last card.
func (s Session) CanAdvance() bool {
	if len(s.sequence) == 0 {
		return false
	}
	return s.Phase() == Exploring || s.clampedCursor() < len(s.sequence)-1
}
