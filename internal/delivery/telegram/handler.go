package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/repository"
)

type QuizService interface {
	Start(ctx context.Context, userID, chatID int64, n int) error
	Cancel(userID int64) bool
	HandleAnswer(token string, userID int64, selected int)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID int64, firstName, username string) error
	IsAllowed(ctx context.Context, userID int64) (bool, error)
}

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	quizService QuizService
	userService UserService

	defaultLength int
	accessEnabled bool
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	userService UserService,
	defaultLength int,
	accessEnabled bool,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		quizService:   quizService,
		userService:   userService,
		defaultLength: defaultLength,
		accessEnabled: accessEnabled,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.PollAnswer != nil {
		h.handlePollAnswer(update.PollAnswer)
		return
	}

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message, callback or poll answer")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	if from == nil {
		return
	}

	if err := h.userService.EnsureUser(ctx, from.ID, from.FirstName, from.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newMessage(chatID, msgWelcome))

	case "quiz":
		msg := newMessage(chatID, msgChooseLength)
		msg.ReplyMarkup = buildQuizLengthKeyboard()
		h.send(msg)

	case "stop":
		if h.quizService.Cancel(from.ID) {
			h.send(newMessage(chatID, msgQuizCancelled))
		} else {
			h.send(newMessage(chatID, msgNoActiveQuiz))
		}

	case "help":
		h.send(newMessage(chatID, msgHelp))

	default:
		h.send(newMessage(chatID, msgUnknownCommand))
	}
}

// handlePollAnswer feeds an inbound answer into the quiz engine. The poll id
// is the question token; a retracted vote arrives with no options and is
// treated as an answer that can never be correct.
func (h *Handler) handlePollAnswer(pa *tgbotapi.PollAnswer) {
	selected := -1
	if len(pa.OptionIDs) > 0 {
		selected = pa.OptionIDs[0]
	}

	h.quizService.HandleAnswer(pa.PollID, pa.User.ID, selected)
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	switch {
	case cb.Data == callbackQuizAgain:
		_ = h.withErrorHandling(h.startQuizHandler(userID, h.defaultLength))(ctx, chatID)

	default:
		if n, ok := parseQuizLengthCallback(cb.Data); ok {
			_ = h.withErrorHandling(h.startQuizHandler(userID, n))(ctx, chatID)
		}
	}
}

// startQuizHandler starts a quiz of n questions for the user. Bank errors
// are turned into their user-facing messages; no session exists afterwards.
func (h *Handler) startQuizHandler(userID int64, n int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.accessEnabled {
			allowed, err := h.userService.IsAllowed(ctx, userID)
			if err != nil {
				return err
			}
			if !allowed {
				h.send(newMessage(chatID, msgAccessDenied))
				return nil
			}
		}

		err := h.quizService.Start(ctx, userID, chatID, n)
		switch {
		case errors.Is(err, repository.ErrBankEmpty):
			h.send(newMessage(chatID, msgBankEmpty))
			return nil
		case errors.Is(err, repository.ErrBankUnavailable):
			h.send(newMessage(chatID, msgBankUnavailable))
			return nil
		}

		return err
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}
