package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/easyenglish/pkg/models"
)

// WordRepository handles database operations for the lexicon
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns all lexicon words
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT word_id, word, translation, definition FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(id int) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind("SELECT word_id, word, translation, definition FROM words WHERE word_id = ?")
	err := DB.Get(&word, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}
	return &word, nil
}

// GetByWord returns a word by its surface form
func (r *WordRepository) GetByWord(surface string) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind("SELECT word_id, word, translation, definition FROM words WHERE word = ?")
	err := DB.Get(&word, query, surface)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word %q: %w", surface, err)
	}
	return &word, nil
}

// Create inserts a new lexicon word and fills in its ID. Words are
// written once during ingestion and never updated afterwards.
func (r *WordRepository) Create(word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO words (word, translation, definition)
			VALUES ($1, $2, $3)
			RETURNING word_id
		`
		return DB.QueryRow(query, word.Word, word.Translation, word.Definition).Scan(&word.ID)
	}

	// SQLite path, no RETURNING
	result, err := DB.Exec(
		"INSERT INTO words (word, translation, definition) VALUES (?, ?, ?)",
		word.Word, word.Translation, word.Definition,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	word.ID = int(id)
	return nil
}

// AllIDs returns the IDs of every lexicon word
func (r *WordRepository) AllIDs() ([]int, error) {
	var ids []int
	err := DB.Select(&ids, "SELECT word_id FROM words")
	if err != nil {
		return nil, fmt.Errorf("failed to get word IDs: %w", err)
	}
	return ids, nil
}

// Count returns the lexicon size
func (r *WordRepository) Count() (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM words")
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// RandomTranslations returns up to limit distinct translations drawn
// uniformly at random from the lexicon, excluding the given one. Used
// for building the wrong answers of a quiz question.
func (r *WordRepository) RandomTranslations(exclude string, limit int) ([]string, error) {
	var translations []string
	// DISTINCT goes in a subquery: postgres rejects ORDER BY RANDOM()
	// combined with SELECT DISTINCT at the top level.
	query := DB.Rebind(`
		SELECT translation FROM
			(SELECT DISTINCT translation FROM words WHERE translation <> ?) AS t
		ORDER BY RANDOM()
		LIMIT ?
	`)
	err := DB.Select(&translations, query, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get random translations: %w", err)
	}
	return translations, nil
}
