// Package ingest populates the lexicon from a word list, resolving
// each word through the translation and dictionary lookup services.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/example/easyenglish/pkg/models"
	"github.com/xuri/excelize/v2"
)

// SentinelDefinition is stored when the dictionary lookup fails for a
// word; the word is still ingested with its translation.
const SentinelDefinition = "Sorry pal, we couldn't find definitions for the word you were looking for"

type translator interface {
	Translate(word string) (string, error)
}

type definer interface {
	Example(word string) (string, error)
}

type wordStore interface {
	GetAll() ([]models.Word, error)
	Create(word *models.Word) error
}

// Result summarizes one ingestion run.
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Loader glues the lookup clients to the word repository.
type Loader struct {
	translator translator
	definer    definer
	words      wordStore
}

// New creates a loader over the given collaborators.
func New(t translator, d definer, words wordStore) *Loader {
	return &Loader{translator: t, definer: d, words: words}
}

// LoadFile ingests a word list from path. ".xlsx" files are read with
// one word per row in the first column; anything else is treated as a
// newline-delimited text list.
func (l *Loader) LoadFile(path string) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		words, err := readExcelList(path)
		if err != nil {
			return nil, err
		}
		return l.LoadWords(words)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	words, err := ReadWordList(f)
	if err != nil {
		return nil, err
	}
	return l.LoadWords(words)
}

// LoadWords ingests the given words one by one. A failure on any word
// is recorded and the run continues.
func (l *Loader) LoadWords(words []string) (*Result, error) {
	existing, err := l.words.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load existing lexicon: %w", err)
	}

	// Words are immutable once ingested; re-runs skip known ones.
	known := make(map[string]bool, len(existing))
	for _, w := range existing {
		known[w.Word] = true
	}

	result := &Result{}
	for _, raw := range words {
		word := capitalize(strings.TrimSpace(raw))
		if word == "" {
			continue
		}
		result.TotalProcessed++

		if known[word] {
			result.Skipped++
			continue
		}

		translation, err := l.translator.Translate(word)
		if err != nil {
			log.Printf("Skipping %q: translation failed: %v", word, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", word, err))
			continue
		}

		definition, err := l.definer.Example(word)
		if err != nil {
			log.Printf("No definition for %q: %v", word, err)
			definition = SentinelDefinition
		}

		entry := &models.Word{
			Word:        word,
			Translation: capitalize(translation),
			Definition:  definition,
		}
		if err := l.words.Create(entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", word, err))
			continue
		}
		known[word] = true
		result.Created++
	}

	return result, nil
}

// ReadWordList reads a newline-delimited word list, dropping blank lines.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// readExcelList reads the first column of the first sheet.
func readExcelList(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var words []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if cell := strings.TrimSpace(row[0]); cell != "" {
			words = append(words, cell)
		}
	}
	return words, nil
}

// capitalize upper-cases the first letter and lower-cases the rest,
// matching how lexicon entries are stored.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
