// Command ingest populates the lexicon from a word list file, looking
// up translations and example sentences through the external
// dictionary services. It is run once, offline, before the bot starts.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/example/easyenglish/internal/config"
	"github.com/example/easyenglish/internal/database"
	"github.com/example/easyenglish/internal/ingest"
	"github.com/example/easyenglish/internal/lookup"
	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "words.txt", "word list file (.txt with one word per line, or .xlsx)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := config.Load()
	if err := cfg.ValidateIngest(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := database.Connect(cfg.DBDriver, cfg.DSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	loader := ingest.New(
		lookup.NewTranslator(cfg.YandexToken, cfg.YandexURL),
		lookup.NewDefiner(""),
		database.NewWordRepository(),
	)

	result, err := loader.LoadFile(*file)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	log.Printf("Processed %d words: %d created, %d skipped", result.TotalProcessed, result.Created, result.Skipped)
	for _, msg := range result.Errors {
		log.Printf("Error: %s", msg)
	}
}
