package database

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLexiconExhausted is returned by AddWord when every lexicon
	// word is already assigned to the user.
	ErrLexiconExhausted = errors.New("lexicon exhausted")
)
