// Package quiz selects words due for practice, builds multiple-choice
// questions over the lexicon and evaluates answers against the mastery
// threshold.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/easyenglish/pkg/models"
)

// ChoiceCount is the number of translation options shown per question.
const ChoiceCount = 4

// ErrNoPendingWords is returned by NextQuestion when every assigned
// word has reached the mastery threshold (or nothing is assigned).
var ErrNoPendingWords = errors.New("no pending words")

// progressStore is the slice of the progress repository the engine needs
type progressStore interface {
	CountPending(userID int64) (int, error)
	RandomPending(userID int64) (*models.Word, error)
	IncrementCounter(userID int64, wordID int) error
	CounterOf(userID int64, wordID int) (int, error)
}

// lexicon is the slice of the word repository the engine needs
type lexicon interface {
	RandomTranslations(exclude string, limit int) ([]string, error)
}

// Question is one round of the quiz: the word being asked and the
// shuffled translation options.
type Question struct {
	Word    models.Word
	Choices []string
}

// Result reports the outcome of an answer evaluation.
type Result struct {
	Correct bool
	// Counter is the learn counter after a correct answer. It is zero
	// and carries no meaning when Correct is false.
	Counter int
	// NewlyMastered is true only on the answer that moves the counter
	// onto the mastery threshold, not on later correct answers.
	NewlyMastered bool
}

// Engine implements question selection and answer evaluation.
type Engine struct {
	progress progressStore
	words    lexicon
	rnd      *rand.Rand
}

// New creates a quiz engine over the given stores.
func New(progress progressStore, words lexicon) *Engine {
	return &Engine{
		progress: progress,
		words:    words,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NextQuestion picks one random word with a counter below the mastery
// threshold and builds its choices. Returns ErrNoPendingWords when the
// user has nothing left to practice.
func (e *Engine) NextQuestion(userID int64) (*Question, error) {
	pending, err := e.progress.CountPending(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending words: %w", err)
	}
	if pending == 0 {
		return nil, ErrNoPendingWords
	}

	word, err := e.progress.RandomPending(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to pick a pending word: %w", err)
	}

	choices, err := e.BuildChoices(word.Translation)
	if err != nil {
		return nil, err
	}

	return &Question{Word: *word, Choices: choices}, nil
}

// BuildChoices returns the correct translation plus up to ChoiceCount-1
// distinct decoy translations from the lexicon, in random order.
func (e *Engine) BuildChoices(correct string) ([]string, error) {
	decoys, err := e.words.RandomTranslations(correct, ChoiceCount-1)
	if err != nil {
		return nil, fmt.Errorf("failed to build choices: %w", err)
	}

	choices := append(decoys, correct)
	e.rnd.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices, nil
}

// EvaluateAnswer compares the submitted text with the word's
// translation, case-insensitively. A correct answer increments the
// learn counter; a wrong one changes nothing.
func (e *Engine) EvaluateAnswer(userID int64, word models.Word, submitted string) (Result, error) {
	if !strings.EqualFold(strings.TrimSpace(submitted), word.Translation) {
		return Result{}, nil
	}

	if err := e.progress.IncrementCounter(userID, word.ID); err != nil {
		return Result{}, err
	}
	counter, err := e.progress.CounterOf(userID, word.ID)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Correct:       true,
		Counter:       counter,
		NewlyMastered: counter == models.MasteryThreshold,
	}, nil
}
