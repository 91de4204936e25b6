package deck

// Record is a bilingual exercise flashcard.
//
// Records are values: the sampler and the collection helpers never modify a
// record in place, they return updated copies.
type Record struct {
	ID            int64  `json:"id" yaml:"id" db:"id"`
	TitleEN       string `json:"title_en" yaml:"title_en" db:"title_en"`
	DescriptionEN string `json:"description_en" yaml:"description_en" db:"description_en"`
	TitleFR       string `json:"title_fr" yaml:"title_fr" db:"title_fr"`
	DescriptionFR string `json:"description_fr" yaml:"description_fr" db:"description_fr"`
	Hidden        bool   `json:"hidden" yaml:"hidden" db:"hidden"` // excluded from sessions when set.
}

// Predicate selects records. Sessions only contain records it accepts.
type Predicate func(Record) bool

// IsVisible is the default Predicate: it accepts records that are not hidden.
func IsVisible(r Record) bool {
	return !r.Hidden
}

// Title returns the title in the given language. French falls back to
// English for any other value.
func (r Record) Title(l Language) string {
	if l == French {
		return r.TitleFR
	}
	return r.TitleEN
}

// Description returns the description in the given language, with the same
// fallback as Title.
func (r Record) Description(l Language) string {
	if l == French {
		return r.DescriptionFR
	}
	return r.DescriptionEN
}
