package service

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/repository"
)

type staticLoader struct {
	questions []entities.Question
	err       error
}

func (l *staticLoader) Load() ([]entities.Question, error) {
	return l.questions, l.err
}

func makeQuestions(n int) []entities.Question {
	out := make([]entities.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entities.Question{
			Text:         fmt.Sprintf("q%d", i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % entities.OptionCount,
		})
	}
	return out
}

func newTestBank(t *testing.T, loader *staticLoader) *BankService {
	t.Helper()
	return NewBankService(loader, "0 3 * * *", rand.New(rand.NewSource(42)), zap.NewNop())
}

func TestSelectWithoutReplacement(t *testing.T) {
	bank := newTestBank(t, &staticLoader{questions: makeQuestions(20)})
	if err := bank.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	// Requesting more than the bank holds yields every question exactly once.
	selected, err := bank.Select(30)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(selected) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(selected))
	}

	seen := make(map[string]int, len(selected))
	for _, q := range selected {
		seen[q.Text]++
	}
	for text, count := range seen {
		if count != 1 {
			t.Fatalf("question %q selected %d times", text, count)
		}
	}
}

func TestSelectSubset(t *testing.T) {
	bank := newTestBank(t, &staticLoader{questions: makeQuestions(20)})
	if err := bank.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	selected, err := bank.Select(5)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(selected) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(selected))
	}

	seen := make(map[string]struct{}, len(selected))
	for _, q := range selected {
		if _, dup := seen[q.Text]; dup {
			t.Fatalf("question %q selected twice", q.Text)
		}
		seen[q.Text] = struct{}{}
	}
}

func TestSelectSurfacesLoadErrorWhenCacheEmpty(t *testing.T) {
	bank := newTestBank(t, &staticLoader{err: repository.ErrBankUnavailable})

	_, err := bank.Select(10)
	if !errors.Is(err, repository.ErrBankUnavailable) {
		t.Fatalf("expected ErrBankUnavailable, got %v", err)
	}
}

func TestReloadFailureKeepsPreviousBank(t *testing.T) {
	loader := &staticLoader{questions: makeQuestions(3)}
	bank := newTestBank(t, loader)
	if err := bank.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	loader.questions = nil
	loader.err = repository.ErrBankUnavailable
	if err := bank.Reload(); err == nil {
		t.Fatal("expected reload error")
	}

	if bank.Size() != 3 {
		t.Fatalf("expected previous bank retained, size %d", bank.Size())
	}
}
