// Package lookup holds the HTTP clients for the two external
// dictionary services used during lexicon ingestion: Yandex Dictionary
// for translations and the Free Dictionary API for examples.
package lookup

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNotFound is returned when a service has no entry for the word.
var ErrNotFound = errors.New("lookup: word not found")

// Translator is a client for the Yandex Dictionary API.
type Translator struct {
	token  string
	apiURL string
	client *http.Client
}

// NewTranslator creates a Yandex Dictionary client.
func NewTranslator(token, apiURL string) *Translator {
	return &Translator{
		token:  token,
		apiURL: apiURL,
		client: &http.Client{},
	}
}

// lookupResponse mirrors the subset of the Yandex Dictionary response
// the loader consumes.
type lookupResponse struct {
	Def []struct {
		Tr []struct {
			Text string `json:"text"`
		} `json:"tr"`
	} `json:"def"`
}

// Translate returns the first English-to-Russian translation of word.
func (t *Translator) Translate(word string) (string, error) {
	params := url.Values{}
	params.Set("key", t.token)
	params.Set("lang", "en-ru")
	params.Set("text", word)
	params.Set("ui", "en")

	resp, err := t.client.Get(t.apiURL + "?" + params.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to call translation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	var response lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}

	if len(response.Def) == 0 || len(response.Def[0].Tr) == 0 {
		return "", ErrNotFound
	}
	return response.Def[0].Tr[0].Text, nil
}
