package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/easyenglish/pkg/models"
)

// StartingWords is the number of lexicon words assigned to a user at
// registration. A smaller lexicon simply yields fewer assignments.
const StartingWords = 10

// ProgressRepository handles database operations for per-user learning
// progress (the words_to_users table).
type ProgressRepository struct {
	users *UserRepository
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{users: NewUserRepository()}
}

// Register creates the user and assigns StartingWords random lexicon
// words with a zero counter. It is a no-op for an existing user.
func (r *ProgressRepository) Register(userID int64) error {
	exists, err := r.users.Exists(userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := r.users.Create(userID); err != nil {
		return err
	}
	return r.assignRandom(userID, StartingWords)
}

// Reset deletes all progress rows and then the user row. The caller
// re-registers separately if a fresh assignment is wanted.
func (r *ProgressRepository) Reset(userID int64) error {
	query := DB.Rebind("DELETE FROM words_to_users WHERE user_id = ?")
	if _, err := DB.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete progress for user %d: %w", userID, err)
	}
	return r.users.Delete(userID)
}

// AddWord assigns one random word not yet assigned to the user and
// returns it. Returns ErrLexiconExhausted when the user's assigned set
// already covers the whole lexicon.
func (r *ProgressRepository) AddWord(userID int64) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind(`
		SELECT word_id, word, translation, definition FROM words
		WHERE word_id NOT IN (SELECT word_id FROM words_to_users WHERE user_id = ?)
		ORDER BY RANDOM()
		LIMIT 1
	`)
	err := DB.Get(&word, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLexiconExhausted
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sample unassigned word: %w", err)
	}

	insert := DB.Rebind("INSERT INTO words_to_users (word_id, user_id, learn_counter) VALUES (?, ?, 0)")
	if _, err := DB.Exec(insert, word.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to assign word %d to user %d: %w", word.ID, userID, err)
	}
	return &word, nil
}

// DeleteWord removes the progress entry for (user, word)
func (r *ProgressRepository) DeleteWord(userID int64, wordID int) error {
	query := DB.Rebind("DELETE FROM words_to_users WHERE user_id = ? AND word_id = ?")
	if _, err := DB.Exec(query, userID, wordID); err != nil {
		return fmt.Errorf("failed to delete word %d for user %d: %w", wordID, userID, err)
	}
	return nil
}

// IncrementCounter adds 1 to the learn counter of (user, word)
func (r *ProgressRepository) IncrementCounter(userID int64, wordID int) error {
	query := DB.Rebind(`
		UPDATE words_to_users
		SET learn_counter = learn_counter + 1
		WHERE user_id = ? AND word_id = ?
	`)
	if _, err := DB.Exec(query, userID, wordID); err != nil {
		return fmt.Errorf("failed to increment counter for word %d, user %d: %w", wordID, userID, err)
	}
	return nil
}

// Get returns the progress entry of (user, word), or ErrNotFound when
// the word is not assigned to the user.
func (r *ProgressRepository) Get(userID int64, wordID int) (*models.Progress, error) {
	var progress models.Progress
	query := DB.Rebind("SELECT word_id, user_id, learn_counter FROM words_to_users WHERE user_id = ? AND word_id = ?")
	err := DB.Get(&progress, query, userID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for word %d, user %d: %w", wordID, userID, err)
	}
	return &progress, nil
}

// CounterOf returns the learn counter of (user, word), or ErrNotFound
// when the word is not assigned to the user.
func (r *ProgressRepository) CounterOf(userID int64, wordID int) (int, error) {
	progress, err := r.Get(userID, wordID)
	if err != nil {
		return 0, err
	}
	return progress.LearnCounter, nil
}

// CountPending returns how many assigned words are still below the
// mastery threshold.
func (r *ProgressRepository) CountPending(userID int64) (int, error) {
	return r.countWhere(userID, "learn_counter < ?")
}

// CountMastered returns how many assigned words have reached the
// mastery threshold.
func (r *ProgressRepository) CountMastered(userID int64) (int, error) {
	return r.countWhere(userID, "learn_counter >= ?")
}

func (r *ProgressRepository) countWhere(userID int64, cond string) (int, error) {
	var count int
	query := DB.Rebind("SELECT COUNT(*) FROM words_to_users WHERE user_id = ? AND " + cond)
	if err := DB.Get(&count, query, userID, models.MasteryThreshold); err != nil {
		return 0, fmt.Errorf("failed to count progress for user %d: %w", userID, err)
	}
	return count, nil
}

// AssignedWordIDs returns the IDs of every word assigned to the user
func (r *ProgressRepository) AssignedWordIDs(userID int64) ([]int, error) {
	var ids []int
	query := DB.Rebind("SELECT word_id FROM words_to_users WHERE user_id = ?")
	if err := DB.Select(&ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get assigned word IDs for user %d: %w", userID, err)
	}
	return ids, nil
}

// RandomPending returns one random assigned word still below the
// mastery threshold, joined with its lexicon row. Returns ErrNotFound
// when nothing is pending.
func (r *ProgressRepository) RandomPending(userID int64) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind(`
		SELECT w.word_id, w.word, w.translation, w.definition FROM words w
		JOIN words_to_users wtu ON wtu.word_id = w.word_id
		WHERE wtu.user_id = ? AND wtu.learn_counter < ?
		ORDER BY RANDOM()
		LIMIT 1
	`)
	err := DB.Get(&word, query, userID, models.MasteryThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick pending word for user %d: %w", userID, err)
	}
	return &word, nil
}

// assignRandom links up to n random unassigned lexicon words to the
// user with a zero counter. Sampling from the complement set in a
// single statement keeps the batch duplicate-free and terminates even
// when the pool is smaller than n.
func (r *ProgressRepository) assignRandom(userID int64, n int) error {
	query := DB.Rebind(`
		INSERT INTO words_to_users (word_id, user_id, learn_counter)
		SELECT word_id, CAST(? AS BIGINT), 0 FROM words
		WHERE word_id NOT IN (SELECT word_id FROM words_to_users WHERE user_id = ?)
		ORDER BY RANDOM()
		LIMIT ?
	`)
	if _, err := DB.Exec(query, userID, userID, n); err != nil {
		return fmt.Errorf("failed to assign starting words to user %d: %w", userID, err)
	}
	return nil
}
