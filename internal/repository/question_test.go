package repository

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

func newRepo(path string, seed int64) *QuestionRepository {
	return NewQuestionRepository(path, 100, rand.New(rand.NewSource(seed)))
}

const validBank = `Столица Франции?
A) Берлин
B) Париж
C) Мадрид
D) Рим
Ответ: B

Сколько будет 2+2?
A) 4
B) 3
C) 5
D) 22
Ответ: A
`

func TestLoadParsesRecords(t *testing.T) {
	repo := newRepo(writeBank(t, validBank), 1)

	questions, err := repo.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			t.Fatalf("correct index out of range: %d", q.CorrectIndex)
		}
	}
}

// The permutation may move the correct option anywhere, but the text at the
// remapped index must always be the one the answer line marked.
func TestPermutationKeepsCorrectText(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		repo := newRepo(writeBank(t, validBank), seed)

		questions, err := repo.Load()
		if err != nil {
			t.Fatalf("seed %d: load failed: %v", seed, err)
		}

		if got := questions[0].CorrectOption(); got != "Париж" {
			t.Fatalf("seed %d: correct option changed, got %q", seed, got)
		}
		if got := questions[1].CorrectOption(); got != "4" {
			t.Fatalf("seed %d: correct option changed, got %q", seed, got)
		}
	}
}

func TestMalformedTrailingRecordTruncatesBank(t *testing.T) {
	cases := map[string]string{
		"short tail": validBank + "Вопрос без вариантов?\nA) да\nB) нет\n",
		"missing colon": validBank + `Лишний вопрос?
A) 1
B) 2
C) 3
D) 4
Ответ B
`,
		"unknown letter": validBank + `Лишний вопрос?
A) 1
B) 2
C) 3
D) 4
Ответ: E
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(writeBank(t, content), 3)

			questions, err := repo.Load()
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if len(questions) != 2 {
				t.Fatalf("expected 2 surviving questions, got %d", len(questions))
			}
		})
	}
}

func TestZeroValidRecordsIsEmptyBank(t *testing.T) {
	repo := newRepo(writeBank(t, "Обрывок вопроса?\nA) да\n"), 1)

	_, err := repo.Load()
	if !errors.Is(err, ErrBankEmpty) {
		t.Fatalf("expected ErrBankEmpty, got %v", err)
	}
}

func TestMissingFileIsUnavailable(t *testing.T) {
	repo := newRepo(filepath.Join(t.TempDir(), "no-such-file.txt"), 1)

	_, err := repo.Load()
	if !errors.Is(err, ErrBankUnavailable) {
		t.Fatalf("expected ErrBankUnavailable, got %v", err)
	}
}

func TestLongOptionsAreTruncated(t *testing.T) {
	long := strings.Repeat("ю", 150)
	content := "Вопрос?\nA) " + long + "\nB) два\nC) три\nD) четыре\nОтвет: A\n"
	repo := newRepo(writeBank(t, content), 1)

	questions, err := repo.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := []rune(questions[0].CorrectOption()); len(got) != 100 {
		t.Fatalf("expected option truncated to 100 runes, got %d", len(got))
	}
}
