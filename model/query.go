package model

import (
	"strings"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
)

// LetterQuery is the validated, upper-cased letter sequence of a license plate.
// Each letter is a separate anchor: "AAB" needs two A's before the B.
type LetterQuery struct {
	letters string
}

// NewLetterQuery validates raw input and returns the query. Input shorter than
// config.MinQueryLength or containing anything other than A-Z (any case) is an
// *errors.InvalidQueryError.
func NewLetterQuery(raw string) (LetterQuery, error) {
	if len(raw) < config.MinQueryLength {
		return LetterQuery{}, errors.NewInvalidQueryError(raw, "search term must be at least 3 letters long")
	}
	for _, r := range raw {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return LetterQuery{}, errors.NewInvalidQueryError(raw, "search term may only contain the letters A-Z")
		}
	}
	return LetterQuery{letters: strings.ToUpper(raw)}, nil
}

// Letters returns the query letters, upper-cased.
func (q LetterQuery) Letters() string {
	return q.letters
}

// Len returns the number of anchors in the query.
func (q LetterQuery) Len() int {
	return len(q.letters)
}

func (q LetterQuery) String() string {
	return q.letters
}
