package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/repository"
)

// QuestionLoader loads the full question bank from its source.
type QuestionLoader interface {
	Load() ([]entities.Question, error)
}

// BankService caches the parsed question bank and hands out randomized
// selections for new quiz sessions.
type BankService struct {
	loader QuestionLoader
	logger *zap.Logger

	reloadSpec string

	// loadMu serializes Reload; the loader's rng is not safe for
	// concurrent use between the cron reload and a lazy reload.
	loadMu sync.Mutex

	mu   sync.RWMutex
	bank []entities.Question

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewBankService creates a bank service around the loader. reloadSpec is a
// cron expression for periodic reloads; rng drives question selection and is
// injectable for deterministic tests.
func NewBankService(loader QuestionLoader, reloadSpec string, rng *rand.Rand, logger *zap.Logger) *BankService {
	return &BankService{
		loader:     loader,
		reloadSpec: reloadSpec,
		rng:        rng,
		logger:     logger,
	}
}

// Reload replaces the cached bank with a fresh load. On failure the
// previous bank is kept.
func (s *BankService) Reload() error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	bank, err := s.loader.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.bank = bank
	s.mu.Unlock()

	s.logger.Info("question bank loaded", zap.Int("questions", len(bank)))
	return nil
}

// Size returns the number of questions currently cached.
func (s *BankService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bank)
}

// Select returns min(n, bank size) questions drawn without replacement.
//
// Selection policy: the whole bank is copied, Fisher-Yates shuffled and the
// first n questions taken, so a request larger than the bank yields every
// question exactly once. An empty cache triggers one reload attempt, so a
// source that failed at boot surfaces its load error to the caller.
func (s *BankService) Select(n int) ([]entities.Question, error) {
	s.mu.RLock()
	bank := s.bank
	s.mu.RUnlock()

	if len(bank) == 0 {
		if err := s.Reload(); err != nil {
			return nil, err
		}
		s.mu.RLock()
		bank = s.bank
		s.mu.RUnlock()
	}

	if len(bank) == 0 {
		return nil, repository.ErrBankEmpty
	}

	shuffled := make([]entities.Question, len(bank))
	copy(shuffled, bank)

	s.rngMu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.rngMu.Unlock()

	if n <= 0 || n > len(shuffled) {
		n = len(shuffled)
	}

	return shuffled[:n], nil
}

// Run reloads the bank on the configured cron schedule until ctx is done.
func (s *BankService) Run(ctx context.Context) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.reloadSpec, func() {
		if err := s.Reload(); err != nil {
			s.logger.Error("scheduled bank reload failed", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add bank reload cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("bank reload scheduler started", zap.String("spec", s.reloadSpec))

	<-ctx.Done()

	c.Stop()
	s.logger.Info("bank reload scheduler stopped")
}
