// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

const (
	msgWelcome = "Привет! Я бот-викторина.\n\n" +
		"Я задаю вопросы с четырьмя вариантами ответа. На каждый вопрос даётся 45 секунд — " +
		"не успели ответить, идём дальше без балла.\n\n" +
		"Нажмите /quiz, чтобы начать."
	msgHelp = "Команды:\n\n" +
		"/quiz — начать викторину\n" +
		"/stop — прервать текущую викторину\n" +
		"/help — помощь"
	msgChooseLength    = "Сколько вопросов будет в викторине?"
	msgBankUnavailable = "Не удалось загрузить вопросы. Попробуйте позже."
	msgBankEmpty       = "Файл с вопросами пуст или имеет неверный формат."
	msgAccessDenied    = "Извините, у вас нет доступа к викторине."
	msgQuizCancelled   = "Викторина прервана. Результат не сохранён."
	msgNoActiveQuiz    = "Сейчас нет активной викторины. Нажмите /quiz, чтобы начать."
	msgInternalError   = "Что-то пошло не так. Попробуйте позже."
	msgUnknownCommand  = "Неизвестная команда. Нажмите /help для списка команд."
)

func formatQuestionTitle(q entities.Question, num, total int) string {
	return fmt.Sprintf("❓ Вопрос %d/%d\n\n%s", num, total, q.Text)
}

func formatTimeoutNotice(questionText string) string {
	return fmt.Sprintf("⏰ Время вышло! Вопрос остался без ответа:\n\n%s", questionText)
}

func formatSummary(correct, total, percent, grade int) string {
	return fmt.Sprintf(
		"✅ Викторина завершена!\n\n"+
			"Правильных ответов: %d/%d\n"+
			"Результат: %d%%\n"+
			"Оценка: %d",
		correct, total, percent, grade,
	)
}
