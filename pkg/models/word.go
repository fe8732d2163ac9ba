package models

// Word represents a lexicon entry: an English word with its canonical
// Russian translation and an example sentence (or the first dictionary
// definition when no example exists).
type Word struct {
	ID          int    `json:"id" db:"word_id"`
	Word        string `json:"word" db:"word"`
	Translation string `json:"translation" db:"translation"`
	Definition  string `json:"definition" db:"definition"`
}
