package service

import (
	"sync"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// Session is one user's in-progress quiz attempt. The question sequence is
// fixed at creation; the cursor, score and pending token are guarded by the
// session's own mutex, so different users' sessions never contend.
//
// The pending token acts as a single-assignment resolution cell: both the
// answer event and the timer expiry try to claim it, and only the claimant
// applies the advance/score mutation. The loser observes a mismatching token
// and does nothing.
type Session struct {
	userID int64
	chatID int64 // delivery target, fixed at creation
	quests []entities.Question

	mu      sync.Mutex
	index   int
	correct int
	pending string // live poll token, empty while no question is outstanding
}

// NewSession creates a session for userID with a fixed question sequence.
// Messages are delivered to chatID for the whole lifetime of the session.
func NewSession(userID, chatID int64, questions []entities.Question) *Session {
	return &Session{
		userID: userID,
		chatID: chatID,
		quests: questions,
	}
}

// UserID returns the id of the user who started the quiz.
func (s *Session) UserID() int64 { return s.userID }

// ChatID returns the delivery target stored at session creation.
func (s *Session) ChatID() int64 { return s.chatID }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.quests) }

// Current returns the question at the cursor and its 1-based number.
// ok is false when all questions have been resolved.
func (s *Session) Current() (q entities.Question, num int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= len(s.quests) {
		return entities.Question{}, 0, false
	}
	return s.quests[s.index], s.index + 1, true
}

// SetPending records the token of the question that was just presented.
func (s *Session) SetPending(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = token
}

// ResolveAnswer claims the pending token and applies the answer.
// claimed is false when the token has already been resolved (or was never
// pending), in which case nothing changes. The score is credited only on
// strict equality with the correct index; an out-of-range selection still
// resolves the question but never counts.
func (s *Session) ResolveAnswer(token string, selected int) (claimed, correct, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || s.pending != token {
		return false, false, false
	}

	q := s.quests[s.index]
	correct = selected == q.CorrectIndex
	if correct {
		s.correct++
	}

	s.pending = ""
	s.index++
	return true, correct, s.index >= len(s.quests)
}

// ResolveTimeout claims the pending token without score credit and returns
// the question that went unanswered.
func (s *Session) ResolveTimeout(token string) (claimed bool, q entities.Question, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || s.pending != token {
		return false, entities.Question{}, false
	}

	q = s.quests[s.index]
	s.pending = ""
	s.index++
	return true, q, s.index >= len(s.quests)
}

// Abandon clears the pending token without advancing and returns it, so the
// caller can cancel the armed timer of a session that is being discarded.
func (s *Session) Abandon() (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token = s.pending
	s.pending = ""
	return token
}

// Progress returns the current score and cursor position.
func (s *Session) Progress() (correct, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct, s.index
}
