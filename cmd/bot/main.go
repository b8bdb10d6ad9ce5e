package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/config"
	"github.com/aliskhannn/quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/quiz-bot/internal/logger"
	"github.com/aliskhannn/quiz-bot/internal/repository"
	"github.com/aliskhannn/quiz-bot/internal/service"
	"github.com/aliskhannn/quiz-bot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "quiz",
			Description: "Начать викторину",
		},
		{
			Command:     "stop",
			Description: "Прервать текущую викторину",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	zl.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to create postgres pool", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	userService := service.NewUserService(userRepo)

	// Separate rngs: the repository permutes options during (serialized)
	// reloads, the bank draws selections from handler goroutines.
	questionRepo := repository.NewQuestionRepository(
		cfg.Quiz.QuestionsPath,
		cfg.Quiz.MaxOptionLength,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	bankService := service.NewBankService(
		questionRepo,
		cfg.Quiz.ReloadSchedule,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		zl,
	)
	if err := bankService.Reload(); err != nil {
		// A broken bank at boot is not fatal: Select retries the load and
		// the user gets the "bank unavailable" message until it is fixed.
		zl.Warn("initial question bank load failed", zap.Error(err))
	}
	go bankService.Run(ctx)

	sessions := storage.NewSessionStore()
	scheduler := service.NewTimeoutScheduler()
	presenter := telegram.NewPresenter(bot, cfg.Quiz.QuestionTimeout)

	quizService := service.NewQuizService(
		sessions,
		bankService,
		presenter,
		scheduler,
		cfg.Quiz.QuestionTimeout,
		cfg.Quiz.PacingDelay,
		zl,
	)

	handler := telegram.NewHandler(
		bot,
		zl,
		quizService,
		userService,
		cfg.Quiz.DefaultLength,
		cfg.Access.Enabled,
	)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
