package deck

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// SamplerConfig configures a Sampler.
// Zero values produce sensible defaults; see field comments.
type SamplerConfig struct {
	Visible Predicate   // nil → IsVisible
	Source  rand.Source // nil → seeded from the clock
}

// Sampler builds and advances sessions.
//
// A Sampler owns a random generator and is not safe for concurrent use.
type Sampler struct {
	visible Predicate
	rng     *rand.Rand
}

// NewSampler creates a Sampler from the given config.
func NewSampler(cfg SamplerConfig) *Sampler {
	visible := cfg.Visible
	if visible == nil {
		visible = IsVisible
	}
	src := cfg.Source
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Sampler{
		visible: visible,
		rng:     rand.New(src),
	}
}

// Initialize starts a new session over the records accepted by visible
// (nil → the sampler's predicate). The accepted records are shuffled once;
// the first card is marked as seen and the cursor placed on it.
//
// An input with no visible records yields an empty session. The records
// slice is not modified.
func (s *Sampler) Initialize(records []Record, visible Predicate) Session {
	if visible == nil {
		visible = s.visible
	}
	seq := shuffle(filter(records, visible), s.rng)
	return newSession(uuid.NewString(), seq)
}

// Reset discards sess entirely and starts a new session. It is equivalent to
// Initialize: nothing from the previous visited set carries over.
func (s *Sampler) Reset(records []Record, visible Predicate) Session {
	return s.Initialize(records, visible)
}

// Advance moves to the next card, showing every card once before any
// repeats.
//
// While Exploring it jumps to a uniformly random unseen position and marks
// it seen. Once Completed it moves one position forward, holding at the last
// card. Advance on an empty session returns it unchanged.
func (s *Sampler) Advance(sess Session) Session {
	n := len(sess.sequence)
	if n == 0 {
		return sess
	}
	next := sess.clone()

	if next.VisitedCount() < n {
		if pos, ok := pickUnvisited(next.visited, n, s.rng); ok {
			next.visited.Set(uint(pos))
			next.cursor = pos
			return next
		}
	}

	// Completed, or no unseen position left: plain sequential step.
	next.cursor = min(next.cursor+1, n-1)
	return next
}

// Retreat moves back one position, holding at the first card. The visited
// set is left as is.
func (s *Sampler) Retreat(sess Session) Session {
	if len(sess.sequence) == 0 || sess.clampedCursor() == 0 {
		return sess
	}
	prev := sess.clone()
	prev.cursor--
	return prev
}
