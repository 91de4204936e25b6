// Package deck implements bilingual exercise flashcards and the session
// sampler that walks them.
//
// A Session is a shuffled pass over the visible records of a collection. The
// Sampler shows every card once, in random order, before any card repeats,
// and tracks how much of the pass has been seen. Once every card has been
// shown the session is Completed and Advance falls back to plain sequential
// movement.
//
// Basic usage:
//
//	s := deck.NewSampler(deck.SamplerConfig{})
//
//	sess := s.Initialize(deck.DefaultRecords(), nil)
//	for sess.Phase() == deck.Exploring {
//	    rec, _ := sess.Current()
//	    fmt.Println(rec.Title(deck.English), sess.Progress())
//	    sess = s.Advance(sess)
//	}
//
// Sessions are values. Every transition returns a new Session and leaves
// its input untouched, so a display layer can keep the single live copy and
// re-render whenever it changes.
package deck
