package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/easyenglish/internal/bot"
	"github.com/example/easyenglish/internal/config"
	"github.com/example/easyenglish/internal/database"
	"github.com/example/easyenglish/internal/notifier"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := config.Load()
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := database.Connect(cfg.DBDriver, cfg.DSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	subscribers := notifier.NewSubscribers()

	b, err := bot.New(cfg.TelegramToken, subscribers, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	reminders := notifier.New(subscribers, b, cfg.RemindAt)
	if err := reminders.Start(); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer reminders.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped successfully")
}
