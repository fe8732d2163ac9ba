package lookup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultDictionaryURL is the Free Dictionary API endpoint prefix; the
// word is appended to it.
const DefaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

// Definer is a client for the Free Dictionary API.
type Definer struct {
	apiURL string
	client *http.Client
}

// NewDefiner creates a Free Dictionary client. An empty apiURL falls
// back to DefaultDictionaryURL.
func NewDefiner(apiURL string) *Definer {
	if apiURL == "" {
		apiURL = DefaultDictionaryURL
	}
	return &Definer{
		apiURL: apiURL,
		client: &http.Client{},
	}
}

// dictEntry mirrors the subset of the Free Dictionary response the
// loader consumes.
type dictEntry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Example returns an example sentence for the word, or the first
// definition when no definition carries an example. A word the service
// does not know yields ErrNotFound.
func (d *Definer) Example(word string) (string, error) {
	resp, err := d.client.Get(d.apiURL + url.PathEscape(word))
	if err != nil {
		return "", fmt.Errorf("failed to call dictionary API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dictionary API returned status %d", resp.StatusCode)
	}

	var entries []dictEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("failed to decode dictionary response: %w", err)
	}

	if len(entries) == 0 || len(entries[0].Meanings) == 0 {
		return "", ErrNotFound
	}

	definitions := entries[0].Meanings[0].Definitions
	if len(definitions) == 0 {
		return "", ErrNotFound
	}
	for _, def := range definitions {
		if def.Example != "" {
			return def.Example, nil
		}
	}
	return definitions[0].Definition, nil
}
