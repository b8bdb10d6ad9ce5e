package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// Presenter delivers quiz prompts and progress messages over Telegram.
// It implements the state machine's Presenter interface; the poll id
// returned by Telegram serves as the question token.
type Presenter struct {
	bot             *tgbotapi.BotAPI
	questionTimeout time.Duration
}

// NewPresenter creates a Presenter. questionTimeout is mirrored into the
// poll's open period so the visible countdown matches the engine's timer.
func NewPresenter(bot *tgbotapi.BotAPI, questionTimeout time.Duration) *Presenter {
	return &Presenter{
		bot:             bot,
		questionTimeout: questionTimeout,
	}
}

// PresentQuestion sends the question as a non-anonymous Telegram quiz poll
// and returns its poll id.
func (p *Presenter) PresentQuestion(chatID int64, q entities.Question, num, total int) (string, error) {
	poll := tgbotapi.NewPoll(chatID, formatQuestionTitle(q, num, total), q.Options...)
	poll.Type = "quiz"
	poll.IsAnonymous = false
	poll.CorrectOptionID = int64(q.CorrectIndex)
	poll.OpenPeriod = int(p.questionTimeout.Seconds())

	msg, err := p.bot.Send(poll)
	if err != nil {
		return "", fmt.Errorf("send quiz poll: %w", err)
	}
	if msg.Poll == nil {
		return "", fmt.Errorf("send quiz poll: response carries no poll")
	}

	return msg.Poll.ID, nil
}

// NotifyTimeout tells the user which question went unanswered.
func (p *Presenter) NotifyTimeout(chatID int64, questionText string) error {
	msg := tgbotapi.NewMessage(chatID, formatTimeoutNotice(questionText))
	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("send timeout notice: %w", err)
	}

	return nil
}

// SendSummary delivers the final score with a play-again keyboard.
func (p *Presenter) SendSummary(chatID int64, correct, total, percent, grade int) error {
	msg := tgbotapi.NewMessage(chatID, formatSummary(correct, total, percent, grade))
	msg.ReplyMarkup = buildQuizResultKeyboard()

	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("send quiz summary: %w", err)
	}

	return nil
}
