package models

// MasteryThreshold is the number of correct answers after which a word
// counts as learned.
const MasteryThreshold = 5

// Progress links a lexicon word to a user currently learning it.
// LearnCounter only ever grows until the row is deleted.
type Progress struct {
	WordID       int   `json:"word_id" db:"word_id"`
	UserID       int64 `json:"user_id" db:"user_id"`
	LearnCounter int   `json:"learn_counter" db:"learn_counter"`
}

// Mastered reports whether the word has been answered correctly enough
// times to count as learned.
func (p Progress) Mastered() bool {
	return p.LearnCounter >= MasteryThreshold
}
