package repository

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

var (
	// ErrBankUnavailable is returned when the question source cannot be read.
	ErrBankUnavailable = errors.New("question bank unavailable")
	// ErrBankEmpty is returned when parsing produced zero valid questions.
	ErrBankEmpty = errors.New("question bank is empty")
)

// recordLines is the number of non-blank lines per question record:
// question text, four options, answer line.
const recordLines = 6

// optionPrefixLen is the length of the "A) " style prefix on option lines.
const optionPrefixLen = 3

var letterIndex = map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}

// QuestionRepository loads multiple-choice questions from a flat text file.
//
// Each record is six non-blank lines: the question text, four options
// prefixed with "A) ".."D) ", and a final "<label>: <LETTER>" line naming
// the correct option. A structurally broken record terminates parsing;
// everything parsed before it is kept.
type QuestionRepository struct {
	path      string
	maxOption int // maximum option length in runes before display
	rng       *rand.Rand
}

// NewQuestionRepository creates a repository reading from path.
// Options longer than maxOption runes are truncated; the rng drives the
// per-question option permutation and is injectable for deterministic tests.
func NewQuestionRepository(path string, maxOption int, rng *rand.Rand) *QuestionRepository {
	return &QuestionRepository{
		path:      path,
		maxOption: maxOption,
		rng:       rng,
	}
}

// Load reads and parses the question file.
//
// It returns ErrBankUnavailable if the file cannot be opened and
// ErrBankEmpty if no valid records were found. A malformed trailing
// record truncates the bank rather than failing the whole load.
func (r *QuestionRepository) Load() ([]entities.Question, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBankUnavailable, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBankUnavailable, err)
	}

	questions := r.parse(lines)
	if len(questions) == 0 {
		return nil, ErrBankEmpty
	}

	return questions, nil
}

// parse walks the non-blank lines in records of six. The first record that
// fails a structural check stops the walk; prior records survive.
func (r *QuestionRepository) parse(lines []string) []entities.Question {
	var questions []entities.Question

	for i := 0; i+recordLines <= len(lines); i += recordLines {
		q, ok := r.parseRecord(lines[i : i+recordLines])
		if !ok {
			break
		}
		questions = append(questions, q)
	}

	return questions
}

func (r *QuestionRepository) parseRecord(rec []string) (entities.Question, bool) {
	options := make([]string, 0, entities.OptionCount)
	for _, line := range rec[1 : 1+entities.OptionCount] {
		if len(line) <= optionPrefixLen {
			return entities.Question{}, false
		}
		options = append(options, truncate(line[optionPrefixLen:], r.maxOption))
	}

	// Answer line: "<label>: <LETTER>".
	_, letter, found := strings.Cut(rec[recordLines-1], ":")
	if !found {
		return entities.Question{}, false
	}
	correct, ok := letterIndex[strings.ToUpper(strings.TrimSpace(letter))]
	if !ok {
		return entities.Question{}, false
	}

	q := entities.Question{
		Text:         rec[0],
		Options:      options,
		CorrectIndex: correct,
	}
	return r.permuteOptions(q), true
}

// permuteOptions shuffles the option order uniformly and remaps the correct
// index through the permutation, so the correct option text never changes,
// only its displayed position.
func (r *QuestionRepository) permuteOptions(q entities.Question) entities.Question {
	perm := r.rng.Perm(len(q.Options))

	shuffled := make([]string, len(q.Options))
	correct := q.CorrectIndex
	for to, from := range perm {
		shuffled[to] = q.Options[from]
		if from == q.CorrectIndex {
			correct = to
		}
	}

	q.Options = shuffled
	q.CorrectIndex = correct
	return q
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
