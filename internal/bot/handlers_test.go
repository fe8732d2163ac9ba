package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/easyenglish/internal/database"
	"github.com/example/easyenglish/internal/notifier"
	"github.com/example/easyenglish/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeAPI struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) texts() []string {
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.Text)
	}
	return out
}

func (f *fakeAPI) last() tgbotapi.MessageConfig {
	return f.sent[len(f.sent)-1]
}

func newTestBot(t *testing.T, lexicon int) (*Bot, *fakeAPI) {
	t.Helper()
	require.NoError(t, database.Connect("sqlite3", ":memory:"))
	t.Cleanup(func() { database.Close() })

	words := database.NewWordRepository()
	for i := 1; i <= lexicon; i++ {
		w := models.Word{
			Word:        fmt.Sprintf("Word%02d", i),
			Translation: fmt.Sprintf("Перевод%02d", i),
			Definition:  fmt.Sprintf("Example sentence %d", i),
		}
		require.NoError(t, words.Create(&w))
	}

	api := &fakeAPI{}
	b := newBot(&tgbotapi.BotAPI{Self: tgbotapi.User{FirstName: "EasyEnglish"}}, notifier.NewSubscribers(), false)
	b.out = api
	return b, api
}

func userMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1, FirstName: "Иван"},
		Chat: &tgbotapi.Chat{ID: 1},
		Text: text,
	}
}

// assignedWord registers the user and returns one of their pending words.
func assignedWord(t *testing.T, b *Bot, userID int64) models.Word {
	t.Helper()
	require.NoError(t, b.progress.Register(userID))
	w, err := b.progress.RandomPending(userID)
	require.NoError(t, err)
	return *w
}

func keyboardButtons(t *testing.T, msg tgbotapi.MessageConfig) []string {
	t.Helper()
	markup, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok, "expected a reply keyboard")
	var labels []string
	for _, row := range markup.Keyboard {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	return labels
}

func TestIdleUnrecognizedInputReprompts(t *testing.T) {
	b, api := newTestBot(t, 1)

	require.NoError(t, b.handleText(userMessage("что-то непонятное")))

	require.Len(t, api.sent, 1)
	assert.Equal(t, textDontUnderstand, api.last().Text)
	assert.Contains(t, keyboardButtons(t, api.last()), ButtonStart)
	assert.Equal(t, StateIdle, b.sessions.Get(1).State)
}

func TestStartButtonRegistersAndAsksQuestion(t *testing.T) {
	b, api := newTestBot(t, 1)

	require.NoError(t, b.handleText(userMessage(ButtonStart)))

	sess := b.sessions.Get(1)
	assert.Equal(t, StateAwaitingAnswer, sess.State)
	assert.Equal(t, "Word01", sess.Word.Word)

	require.Len(t, api.sent, 1)
	assert.Contains(t, api.last().Text, "Word01")
	assert.Contains(t, api.last().Text, "Example sentence 1")

	labels := keyboardButtons(t, api.last())
	assert.Contains(t, labels, "Перевод01")
	assert.Contains(t, labels, ButtonNext)
	assert.Contains(t, labels, ButtonAddWord)
	assert.Contains(t, labels, ButtonDeleteWord)
}

func TestEmptyAnswerRepromptsAndKeepsQuizRunning(t *testing.T) {
	b, api := newTestBot(t, 1)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage("")))

	texts := api.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, textDontUnderstand, texts[0])
	assert.Contains(t, texts[1], w.Word)
	assert.Equal(t, StateAwaitingAnswer, b.sessions.Get(1).State)
}

func TestWrongAnswerKeepsQuestionAndCounter(t *testing.T) {
	b, api := newTestBot(t, 2)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage("Чепуха")))

	require.Len(t, api.sent, 1)
	assert.Equal(t, textIncorrect, api.last().Text)

	sess := b.sessions.Get(1)
	assert.Equal(t, StateAwaitingAnswer, sess.State)
	assert.Equal(t, w.ID, sess.Word.ID, "the same question stays open")

	counter, err := b.progress.CounterOf(1, w.ID)
	require.NoError(t, err)
	assert.Zero(t, counter)
}

func TestCorrectAnswerAdvancesToNextQuestion(t *testing.T) {
	b, api := newTestBot(t, 1)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage(strings.ToLower(w.Translation))))

	texts := api.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, textCorrect, texts[0])
	assert.Contains(t, texts[1], w.Word)
	assert.Equal(t, StateAwaitingAnswer, b.sessions.Get(1).State)

	counter, err := b.progress.CounterOf(1, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counter)
}

func TestMasteryMessageThenResetOfferWhenAllLearned(t *testing.T) {
	b, api := newTestBot(t, 1)
	w := assignedWord(t, b, 1)
	for i := 0; i < models.MasteryThreshold-1; i++ {
		require.NoError(t, b.progress.IncrementCounter(1, w.ID))
	}
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage(w.Translation)))

	texts := api.texts()
	require.Len(t, texts, 3)
	assert.Equal(t, textCorrect, texts[0])
	assert.Equal(t, fmt.Sprintf(textMasteredFmt, w.Translation), texts[1])
	assert.Equal(t, textAllLearned, texts[2])
	assert.Contains(t, keyboardButtons(t, api.last()), ButtonYes)
	assert.Equal(t, StateAwaitingResetConfirm, b.sessions.Get(1).State)
}

func TestResetConfirmYesIsCaseInsensitive(t *testing.T) {
	b, api := newTestBot(t, 3)
	w := assignedWord(t, b, 1)
	require.NoError(t, b.progress.IncrementCounter(1, w.ID))
	b.sessions.Set(1, Session{State: StateAwaitingResetConfirm})

	require.NoError(t, b.handleText(userMessage("Да")))

	assert.Equal(t, textResetDone, api.last().Text)
	assert.Contains(t, keyboardButtons(t, api.last()), ButtonHome)
	assert.Equal(t, StateIdle, b.sessions.Get(1).State)

	ids, err := b.progress.AssignedWordIDs(1)
	require.NoError(t, err)
	assert.Len(t, ids, 3, "re-registration starts a fresh assignment")
	for _, id := range ids {
		counter, err := b.progress.CounterOf(1, id)
		require.NoError(t, err)
		assert.Zero(t, counter)
	}
}

func TestResetConfirmNoKeepsProgress(t *testing.T) {
	b, api := newTestBot(t, 3)
	w := assignedWord(t, b, 1)
	require.NoError(t, b.progress.IncrementCounter(1, w.ID))
	b.sessions.Set(1, Session{State: StateAwaitingResetConfirm})

	require.NoError(t, b.handleText(userMessage("НЕТ")))

	assert.Equal(t, textBackToMenu, api.last().Text)
	assert.Equal(t, StateIdle, b.sessions.Get(1).State)

	counter, err := b.progress.CounterOf(1, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counter)
}

func TestResetConfirmUnrecognizedReprompts(t *testing.T) {
	b, api := newTestBot(t, 1)
	b.sessions.Set(1, Session{State: StateAwaitingResetConfirm})

	require.NoError(t, b.handleText(userMessage("может быть")))

	assert.Equal(t, textDontUnderstand, api.last().Text)
	labels := keyboardButtons(t, api.last())
	assert.Contains(t, labels, ButtonYes)
	assert.Contains(t, labels, ButtonNo)
	assert.Equal(t, StateAwaitingResetConfirm, b.sessions.Get(1).State)
}

func TestAddWordWhenLexiconExhausted(t *testing.T) {
	b, api := newTestBot(t, 2)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage(ButtonAddWord)))

	texts := api.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, textLexiconMaxed, texts[0])
	assert.Equal(t, StateAwaitingAnswer, b.sessions.Get(1).State, "the quiz keeps going")
}

func TestAddWordReportsCounts(t *testing.T) {
	b, api := newTestBot(t, 12)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage(ButtonAddWord)))

	texts := api.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Добавлено новое слово")
	assert.Contains(t, texts[0], "Количество изучаемых слов: 11")

	ids, err := b.progress.AssignedWordIDs(1)
	require.NoError(t, err)
	assert.Len(t, ids, database.StartingWords+1)
}

func TestSkipButtonAsksNewQuestion(t *testing.T) {
	b, api := newTestBot(t, 1)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage(ButtonNext)))

	require.Len(t, api.sent, 1)
	assert.Contains(t, api.last().Text, w.Word)
	assert.Equal(t, StateAwaitingAnswer, b.sessions.Get(1).State)

	counter, err := b.progress.CounterOf(1, w.ID)
	require.NoError(t, err)
	assert.Zero(t, counter, "skipping is not answering")
}

func TestDeleteWordButton(t *testing.T) {
	b, api := newTestBot(t, 2)
	w := assignedWord(t, b, 1)
	b.sessions.Set(1, Session{State: StateAwaitingAnswer, Word: w})

	require.NoError(t, b.handleText(userMessage(ButtonDeleteWord)))

	texts := api.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, fmt.Sprintf(textWordDeletedFmt, w.Word), texts[0])

	_, err := b.progress.CounterOf(1, w.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDispatchUnknownCommandRepromptsInProduction(t *testing.T) {
	b, api := newTestBot(t, 1)

	msg := userMessage("/bogus")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}

	require.NoError(t, b.dispatchCommand(msg))
	assert.Equal(t, textDontUnderstand, api.last().Text)
}
