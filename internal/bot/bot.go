// Package bot routes Telegram updates into the quiz dialogue: it asks
// questions, relays answers to the quiz engine and handles the word
// management and subscription commands.
package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/example/easyenglish/internal/database"
	"github.com/example/easyenglish/internal/notifier"
	"github.com/example/easyenglish/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageSender is the slice of the Telegram client the handlers use
// to deliver outbound messages.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot is the Telegram-facing conversation controller.
type Bot struct {
	api      *tgbotapi.BotAPI
	out      messageSender
	progress *database.ProgressRepository
	words    *database.WordRepository
	engine   *quiz.Engine
	sessions *SessionStore
	subs     *notifier.Subscribers
	commands map[string]func(*tgbotapi.Message) error
	debug    bool
}

// New creates a bot instance. The subscriber set is shared with the
// reminder scheduler and injected by the caller.
func New(token string, subs *notifier.Subscribers, debug bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	return newBot(api, subs, debug), nil
}

func newBot(api *tgbotapi.BotAPI, subs *notifier.Subscribers, debug bool) *Bot {
	progress := database.NewProgressRepository()
	words := database.NewWordRepository()

	b := &Bot{
		api:      api,
		out:      api,
		progress: progress,
		words:    words,
		engine:   quiz.New(progress, words),
		sessions: NewSessionStore(),
		subs:     subs,
		debug:    debug,
	}
	b.commands = map[string]func(*tgbotapi.Message) error{
		"start":       b.handleStart,
		"help":        b.handleHelp,
		"menu":        b.handleMenu,
		"subscribe":   b.handleSubscribe,
		"unsubscribe": b.handleUnsubscribe,
		"drop":        b.handleDrop,
	}
	return b
}

// Start registers the command list and consumes updates until the
// context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Запустить бота"},
		tgbotapi.BotCommand{Command: "help", Description: "Помощь"},
		tgbotapi.BotCommand{Command: "menu", Description: "Показать меню"},
		tgbotapi.BotCommand{Command: "subscribe", Description: "Подписаться на напоминания"},
		tgbotapi.BotCommand{Command: "unsubscribe", Description: "Отписаться от напоминаний"},
	)
	if _, err := b.api.Request(commands); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(update)
		}
	}
}

// handleUpdate processes one incoming update. A failure here is fatal
// to the current request only.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	var err error
	if update.Message.IsCommand() {
		err = b.dispatchCommand(update.Message)
	} else {
		err = b.handleText(update.Message)
	}
	if err != nil {
		log.Printf("Error handling update from chat %d: %v", update.Message.Chat.ID, err)
	}
}

// dispatchCommand routes a slash command through the fixed command
// table. An unmapped command is a programming error: it panics in
// debug mode and is logged in production.
func (b *Bot) dispatchCommand(message *tgbotapi.Message) error {
	handler, ok := b.commands[message.Command()]
	if !ok {
		if b.debug {
			log.Panicf("no handler registered for command %q", message.Command())
		}
		log.Printf("no handler registered for command %q", message.Command())
		return b.sendWithKeyboard(message.Chat.ID, textDontUnderstand, mainMenuKeyboard())
	}
	return handler(message)
}

// SendText implements notifier.Sender.
func (b *Bot) SendText(chatID int64, text string) error {
	return b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) error {
	_, err := b.out.Send(msg)
	return err
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return b.send(msg)
}
