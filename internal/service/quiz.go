package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// QuestionSelector draws a randomized question sequence for a new session.
type QuestionSelector interface {
	Select(n int) ([]entities.Question, error)
}

// Presenter is the messaging transport seen from the state machine.
type Presenter interface {
	// PresentQuestion shows the question to the user as a multiple-choice
	// prompt and returns the token correlating it with a later resolution.
	PresentQuestion(chatID int64, q entities.Question, num, total int) (token string, err error)
	// NotifyTimeout tells the user the question went unanswered.
	NotifyTimeout(chatID int64, questionText string) error
	// SendSummary delivers the final score message.
	SendSummary(chatID int64, correct, total, percent, grade int) error
}

// Scheduler arms and cancels per-question timeout timers.
type Scheduler interface {
	Arm(token string, d time.Duration, onExpire func())
	Cancel(token string)
}

// SessionStore keeps at most one live session per user and owns the
// token-to-session mapping.
type SessionStore interface {
	// Replace installs s as the user's session, returning the displaced one.
	Replace(s *Session) (displaced *Session)
	ByUser(userID int64) (*Session, bool)
	ByToken(token string) (*Session, bool)
	BindToken(token string, s *Session)
	ReleaseToken(token string)
	// Remove drops s only if it is still the user's current session.
	Remove(s *Session) bool
	IsCurrent(s *Session) bool
}

// QuizService sequences questions for every active session: it presents a
// question, races the user's answer against the timeout, tallies the score
// and advances until completion.
//
// Each question is resolved exactly once. Both triggers go through the
// session's resolution cell; whichever claims it cancels the other, applies
// the transition and schedules the next presentation. The losing trigger is
// dropped silently.
type QuizService struct {
	store     SessionStore
	selector  QuestionSelector
	presenter Presenter
	scheduler Scheduler
	logger    *zap.Logger

	questionTimeout time.Duration
	pacingDelay     time.Duration
}

// NewQuizService wires the state machine with its collaborators.
func NewQuizService(
	store SessionStore,
	selector QuestionSelector,
	presenter Presenter,
	scheduler Scheduler,
	questionTimeout time.Duration,
	pacingDelay time.Duration,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		store:           store,
		selector:        selector,
		presenter:       presenter,
		scheduler:       scheduler,
		questionTimeout: questionTimeout,
		pacingDelay:     pacingDelay,
		logger:          logger,
	}
}

// Start begins a new quiz of n questions for the user. Any prior session of
// the same user is displaced and its pending timer cancelled before the new
// session presents its first question. Bank errors are returned without
// creating a session.
func (s *QuizService) Start(ctx context.Context, userID, chatID int64, n int) error {
	questions, err := s.selector.Select(n)
	if err != nil {
		return err
	}

	sess := NewSession(userID, chatID, questions)
	if old := s.store.Replace(sess); old != nil {
		s.abandon(old)
		s.logger.Info("previous session displaced", zap.Int64("user_id", userID))
	}

	s.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.Int("questions", len(questions)),
	)

	s.presentCurrent(sess)
	return nil
}

// Cancel tears down the user's active session without a summary.
// It reports whether a session existed.
func (s *QuizService) Cancel(userID int64) bool {
	sess, ok := s.store.ByUser(userID)
	if !ok {
		return false
	}
	if !s.store.Remove(sess) {
		return false
	}

	s.abandon(sess)

	s.logger.Info("quiz cancelled", zap.Int64("user_id", userID))
	return true
}

// HandleAnswer resolves the pending question identified by token with the
// user's selection. selected is -1 when the user retracted or sent no
// option; such an answer resolves the question but never scores. Events for
// unknown or already-resolved tokens are dropped.
func (s *QuizService) HandleAnswer(token string, userID int64, selected int) {
	sess, ok := s.store.ByToken(token)
	if !ok {
		s.logger.Debug("answer for unknown token dropped",
			zap.String("token", token),
			zap.Int64("user_id", userID),
		)
		return
	}

	// The session belongs to the user who started the quiz; answers from
	// anyone else (a forwarded poll, for instance) are ignored.
	if sess.UserID() != userID {
		s.logger.Debug("answer from foreign user dropped",
			zap.String("token", token),
			zap.Int64("user_id", userID),
		)
		return
	}

	claimed, correct, done := sess.ResolveAnswer(token, selected)
	if !claimed {
		s.logger.Debug("duplicate resolution dropped",
			zap.String("token", token),
		)
		return
	}

	s.store.ReleaseToken(token)
	s.scheduler.Cancel(token)

	s.logger.Debug("question answered",
		zap.Int64("user_id", sess.UserID()),
		zap.Bool("correct", correct),
	)

	s.scheduleNext(sess, done)
}

// expire is the timeout trigger for token. It goes through the same
// resolution cell as HandleAnswer, so a late answer after expiry (or an
// expiry racing a just-arrived answer) is a no-op.
func (s *QuizService) expire(token string) {
	sess, ok := s.store.ByToken(token)
	if !ok {
		return
	}

	claimed, q, done := sess.ResolveTimeout(token)
	if !claimed {
		return
	}

	s.store.ReleaseToken(token)

	s.logger.Debug("question timed out",
		zap.Int64("user_id", sess.UserID()),
	)

	// State is already advanced; the notification is best effort.
	if s.store.IsCurrent(sess) {
		if err := s.presenter.NotifyTimeout(sess.ChatID(), q.Text); err != nil {
			s.logger.Error("failed to send timeout notice",
				zap.Int64("user_id", sess.UserID()),
				zap.Error(err),
			)
		}
	}

	s.scheduleNext(sess, done)
}

// scheduleNext continues the session after the pacing delay. Only the
// claimant of a resolution ever gets here, so the per-session progression
// stays strictly ordered.
func (s *QuizService) scheduleNext(sess *Session, done bool) {
	time.AfterFunc(s.pacingDelay, func() {
		if done {
			s.complete(sess)
			return
		}
		s.presentCurrent(sess)
	})
}

// presentCurrent shows the question at the session cursor, binds the
// returned token and arms the timeout. A session that has been displaced
// while its continuation was in flight is dropped here.
func (s *QuizService) presentCurrent(sess *Session) {
	if !s.store.IsCurrent(sess) {
		return
	}

	q, num, ok := sess.Current()
	if !ok {
		s.complete(sess)
		return
	}

	token, err := s.presenter.PresentQuestion(sess.ChatID(), q, num, sess.Total())
	if err != nil {
		s.logger.Error("failed to present question, tearing session down",
			zap.Int64("user_id", sess.UserID()),
			zap.Error(err),
		)
		s.store.Remove(sess)
		return
	}

	sess.SetPending(token)
	s.store.BindToken(token, sess)
	s.scheduler.Arm(token, s.questionTimeout, func() { s.expire(token) })
}

// complete finalizes the session: computes the grade, removes the session
// and delivers the summary. The removal is pointer-guarded, so a session
// displaced by a newer quiz start cannot tear the new one down.
func (s *QuizService) complete(sess *Session) {
	if !s.store.Remove(sess) {
		return
	}

	correct, _ := sess.Progress()
	total := sess.Total()
	percent, grade := Score(correct, total)

	s.logger.Info("quiz completed",
		zap.Int64("user_id", sess.UserID()),
		zap.Int("correct", correct),
		zap.Int("total", total),
		zap.Int("percent", percent),
		zap.Int("grade", grade),
	)

	if err := s.presenter.SendSummary(sess.ChatID(), correct, total, percent, grade); err != nil {
		s.logger.Error("failed to send quiz summary",
			zap.Int64("user_id", sess.UserID()),
			zap.Error(err),
		)
	}
}

// abandon cancels the pending timer of a displaced session and releases its
// token so a stale expiry can never fire against the new session.
func (s *QuizService) abandon(old *Session) {
	if token := old.Abandon(); token != "" {
		s.scheduler.Cancel(token)
		s.store.ReleaseToken(token)
	}
}
