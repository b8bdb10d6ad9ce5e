package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildQuizLengthKeyboard builds the question-count selection keyboard.
func buildQuizLengthKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("5 вопросов", buildQuizLengthCallback(5)),
			tgbotapi.NewInlineKeyboardButtonData("10 вопросов", buildQuizLengthCallback(10)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("20 вопросов", buildQuizLengthCallback(20)),
			tgbotapi.NewInlineKeyboardButtonData("30 вопросов", buildQuizLengthCallback(30)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("50 вопросов", buildQuizLengthCallback(50)),
		),
	)
}

// buildQuizResultKeyboard builds the keyboard shown with the final score.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Сыграть ещё раз", callbackQuizAgain),
		),
	)
}
