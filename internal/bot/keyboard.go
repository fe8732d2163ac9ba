package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button labels. These are part of the observable contract with
// existing clients and must not change.
const (
	ButtonAddWord    = "Добавить слово ➕"
	ButtonDeleteWord = "Удалить слово❌"
	ButtonNext       = "Пропустить ⏭"
	ButtonRules      = "📜Правила"
	ButtonStart      = "🚀Начать"
	ButtonStartAgain = "🔄Начать заново"
	ButtonHome       = "В начало↩️"
	ButtonYes        = "Да"
	ButtonNo         = "Нет"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonRules),
			tgbotapi.NewKeyboardButton(ButtonStart),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonStartAgain),
		),
	)
	markup.ResizeKeyboard = true
	return markup
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonYes),
			tgbotapi.NewKeyboardButton(ButtonNo),
		),
	)
	markup.ResizeKeyboard = true
	return markup
}

func homeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonHome),
		),
	)
	markup.ResizeKeyboard = true
	return markup
}

// questionKeyboard lays out the translation choices two per row,
// followed by the round actions.
func questionKeyboard(choices []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(choices); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(choices[i])}
		if i+1 < len(choices) {
			row = append(row, tgbotapi.NewKeyboardButton(choices[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonNext),
			tgbotapi.NewKeyboardButton(ButtonAddWord),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonDeleteWord),
		),
	)
	return tgbotapi.NewReplyKeyboard(rows...)
}
