package deck

import "errors"

// Sentinel errors for the deck package.
// Use errors.Is to check: errors.Is(err, deck.ErrRecordNotFound)
var (
	ErrRecordNotFound  = errors.New("deck: record not found")
	ErrDuplicateID     = errors.New("deck: duplicate record ID")
	ErrLastRecord      = errors.New("deck: cannot remove the last record")
	ErrInvalidLanguage = errors.New("deck: invalid language")
)
