package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/easyenglish/internal/database"
	"github.com/example/easyenglish/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply texts. Like the button labels, these are part of the
// observable contract.
const (
	textHelp = "👋 Здравствуйте!\n\n" +
		"Нажмите \"🚀Начать\", чтобы открыть меню выбора переводов.\n" +
		"Выберите правильный перевод предложенного слова. " +
		"💡 Вам будет предоставлен пример использования или описание слова.\n\n" +
		"Дополнительные функции:\n" +
		"Нажмите \"Добавить слово ➕\" чтобы изучать дополнительное слово\n" +
		"Нажмите \"Удалить слово❌\" чтобы оно больше не появлялось\n" +
		"Нажмите \"Пропустить ⏭\" чтобы вернуться к слову позднее\n" +
		"🔔 Подпишись, чтобы получать напоминания каждый день!\n\n"

	textMenu = "Вы можете использовать следующие команды:\n" +
		"/start - Запустить бота\n" +
		"/help - Помощь\n" +
		"/menu - Показать меню\n" +
		"/subscribe - Подписаться на напоминания\n" +
		"/unsubscribe - Отписаться от напоминаний\n"

	textSubscribed      = "Вы подписались на ежедневные напоминания о изучении английского языка!"
	textAlreadySub      = "Вы уже подписаны!"
	textUnsubscribed    = "Вы отписались от ежедневных напоминаний."
	textNotSubscribed   = "Вы не подписаны на напоминания."
	textResetConfirm    = "Сбросить прогресс и начать заново?"
	textResetDone       = "Прогресс сброшен"
	textBackToMenu      = "Вернуться в главное меню↩️"
	textAllLearned      = "Похоже, вы выучили все слова!🥇 Сбросить прогресс и начать заново?"
	textCorrect         = "✅ Верно!"
	textIncorrect       = "❌ Не верно. Попробуйте ещё"
	textDontUnderstand  = "Я не понимаю это сообщение!"
	textLexiconMaxed    = "❌ Вы добавили максимальное количество слов"
	textMasteredFmt     = "🎉Вы выучили слово %s, угадав его 5 раз!🏆"
	textWordDeletedFmt  = "🗑️Слово удалено: %s"
	textWordAddedFmt    = "🆕Добавлено новое слово для изучения: %s\n📜Количество изучаемых слов: %d\n🧠Слов изучено: %d"
	textQuestionFmt     = "Выбери перевод слова:\n%s\nПример использования слова:\n%s"
	textWelcomeFmt      = "Добро пожаловать, %s!\n✨ Я - <b>%s</b>, ваш личный помощник для улучшения английского языка!\n\n📚 Я здесь, чтобы сделать ваш процесс обучения интересным и эффективным. Давайте вместе достигать больших результатов!"
)

func (b *Bot) handleStart(message *tgbotapi.Message) error {
	userID := message.From.ID
	if err := b.progress.Register(userID); err != nil {
		return fmt.Errorf("failed to register user %d: %w", userID, err)
	}
	b.sessions.Clear(userID)

	msg := tgbotapi.NewMessage(message.Chat.ID,
		fmt.Sprintf(textWelcomeFmt, message.From.FirstName, b.api.Self.FirstName))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	return b.send(msg)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	return b.SendText(message.Chat.ID, textHelp)
}

func (b *Bot) handleMenu(message *tgbotapi.Message) error {
	return b.SendText(message.Chat.ID, textMenu)
}

func (b *Bot) handleSubscribe(message *tgbotapi.Message) error {
	if b.subs.Subscribe(message.Chat.ID) {
		return b.SendText(message.Chat.ID, textSubscribed)
	}
	return b.SendText(message.Chat.ID, textAlreadySub)
}

func (b *Bot) handleUnsubscribe(message *tgbotapi.Message) error {
	if b.subs.Unsubscribe(message.Chat.ID) {
		return b.SendText(message.Chat.ID, textUnsubscribed)
	}
	return b.SendText(message.Chat.ID, textNotSubscribed)
}

func (b *Bot) handleDrop(message *tgbotapi.Message) error {
	return b.offerReset(message.Chat.ID, message.From.ID, textResetConfirm)
}

// handleText drives the dialogue state machine for plain messages.
func (b *Bot) handleText(message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID
	sess := b.sessions.Get(userID)

	switch sess.State {
	case StateAwaitingAnswer:
		return b.handleAnswer(chatID, userID, sess, message)
	case StateAwaitingResetConfirm:
		return b.handleResetConfirm(chatID, userID, message.Text)
	default:
		return b.handleIdle(chatID, userID, message)
	}
}

func (b *Bot) handleIdle(chatID, userID int64, message *tgbotapi.Message) error {
	switch message.Text {
	case ButtonStart:
		if err := b.progress.Register(userID); err != nil {
			return fmt.Errorf("failed to register user %d: %w", userID, err)
		}
		return b.askQuestion(chatID, userID)
	case ButtonRules:
		return b.handleHelp(message)
	case ButtonStartAgain:
		return b.offerReset(chatID, userID, textResetConfirm)
	case ButtonHome:
		return b.handleStart(message)
	default:
		return b.sendWithKeyboard(chatID, textDontUnderstand, mainMenuKeyboard())
	}
}

func (b *Bot) handleAnswer(chatID, userID int64, sess Session, message *tgbotapi.Message) error {
	text := strings.TrimSpace(message.Text)

	switch text {
	case "":
		if err := b.SendText(chatID, textDontUnderstand); err != nil {
			return err
		}
		return b.askQuestion(chatID, userID)
	case ButtonNext:
		return b.askQuestion(chatID, userID)
	case ButtonAddWord:
		return b.handleAddWord(chatID, userID)
	case ButtonDeleteWord:
		return b.handleDeleteWord(chatID, userID, sess)
	}

	result, err := b.engine.EvaluateAnswer(userID, sess.Word, text)
	if err != nil {
		return fmt.Errorf("failed to evaluate answer: %w", err)
	}
	if !result.Correct {
		return b.SendText(chatID, textIncorrect)
	}

	if err := b.SendText(chatID, textCorrect); err != nil {
		return err
	}
	if result.NewlyMastered {
		if err := b.SendText(chatID, fmt.Sprintf(textMasteredFmt, sess.Word.Translation)); err != nil {
			return err
		}
	}
	return b.askQuestion(chatID, userID)
}

func (b *Bot) handleResetConfirm(chatID, userID int64, text string) error {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "да":
		if err := b.progress.Reset(userID); err != nil {
			return fmt.Errorf("failed to reset progress: %w", err)
		}
		if err := b.progress.Register(userID); err != nil {
			return fmt.Errorf("failed to re-register user %d: %w", userID, err)
		}
		b.sessions.Clear(userID)
		return b.sendWithKeyboard(chatID, textResetDone, homeKeyboard())
	case "нет":
		b.sessions.Clear(userID)
		return b.sendWithKeyboard(chatID, textBackToMenu, homeKeyboard())
	default:
		return b.sendWithKeyboard(chatID, textDontUnderstand, confirmKeyboard())
	}
}

// askQuestion selects the next pending word and presents it, or offers
// a reset when everything is learned.
func (b *Bot) askQuestion(chatID, userID int64) error {
	question, err := b.engine.NextQuestion(userID)
	if errors.Is(err, quiz.ErrNoPendingWords) {
		return b.offerReset(chatID, userID, textAllLearned)
	}
	if err != nil {
		return fmt.Errorf("failed to build question: %w", err)
	}

	b.sessions.Set(userID, Session{State: StateAwaitingAnswer, Word: question.Word})

	text := fmt.Sprintf(textQuestionFmt, question.Word.Word, question.Word.Definition)
	return b.sendWithKeyboard(chatID, text, questionKeyboard(question.Choices))
}

func (b *Bot) offerReset(chatID, userID int64, text string) error {
	b.sessions.Set(userID, Session{State: StateAwaitingResetConfirm})
	return b.sendWithKeyboard(chatID, text, confirmKeyboard())
}

func (b *Bot) handleAddWord(chatID, userID int64) error {
	word, err := b.progress.AddWord(userID)
	if errors.Is(err, database.ErrLexiconExhausted) {
		if err := b.SendText(chatID, textLexiconMaxed); err != nil {
			return err
		}
		return b.askQuestion(chatID, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to add word: %w", err)
	}

	pending, err := b.progress.CountPending(userID)
	if err != nil {
		return err
	}
	mastered, err := b.progress.CountMastered(userID)
	if err != nil {
		return err
	}

	if err := b.SendText(chatID, fmt.Sprintf(textWordAddedFmt, word.Word, pending, mastered)); err != nil {
		return err
	}
	return b.askQuestion(chatID, userID)
}

func (b *Bot) handleDeleteWord(chatID, userID int64, sess Session) error {
	if err := b.progress.DeleteWord(userID, sess.Word.ID); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	if err := b.SendText(chatID, fmt.Sprintf(textWordDeletedFmt, sess.Word.Word)); err != nil {
		return err
	}
	return b.askQuestion(chatID, userID)
}
