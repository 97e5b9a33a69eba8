package service

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"funenglish/internal/models"
	"funenglish/internal/quiz"
)

var (
	// ErrNoActiveSession is returned when no quiz has been started
	ErrNoActiveSession = errors.New("no active quiz session")
	// ErrSessionNotFound is returned when a request names a session that is not the active one
	ErrSessionNotFound = errors.New("quiz session not found")
)

// SubmitResult is the outcome of submitting the active quiz
type SubmitResult struct {
	Session quiz.View          `json:"session"`
	Score   models.ScoreResult `json:"score"`
	Percent float64            `json:"percent"`
	Message string             `json:"message"`
	Saved   bool               `json:"saved"`
}

// QuizService holds the single active quiz session. Starting a quiz or
// going home discards the previous session.
type QuizService struct {
	mu        sync.Mutex
	generator *quiz.Generator
	progress  *ProgressService
	active    *quiz.Session
	now       func() time.Time
	logger    logrus.FieldLogger
}

// NewQuizService creates a new quiz service
func NewQuizService(generator *quiz.Generator, progress *ProgressService, logger logrus.FieldLogger) *QuizService {
	return &QuizService{
		generator: generator,
		progress:  progress,
		now:       time.Now,
		logger:    logger,
	}
}

// Start generates a new session, replacing any previous one.
// On error the previous session is kept.
func (s *QuizService) Start(category string, mode models.Mode) (quiz.View, error) {
	session, err := quiz.Start(s.generator, category, mode)
	if err != nil {
		return quiz.View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.logger.WithFields(logrus.Fields{
			"session": s.active.ID(),
			"state":   s.active.State(),
		}).Debug("Discarding previous quiz session")
	}
	s.active = session

	s.logger.WithFields(logrus.Fields{
		"session":   session.ID(),
		"category":  category,
		"mode":      mode,
		"questions": session.QuestionCount(),
	}).Info("Quiz started")
	return session.Snapshot(), nil
}

// Active returns the current session
func (s *QuizService) Active() (quiz.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return quiz.View{}, ErrNoActiveSession
	}
	return s.active.Snapshot(), nil
}

// RecordAnswer stores an answer on the active session
func (s *QuizService) RecordAnswer(sessionID, promptID string, answer models.Answer) (quiz.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return quiz.View{}, err
	}
	if err := session.RecordAnswer(promptID, answer); err != nil {
		return quiz.View{}, err
	}
	return session.Snapshot(), nil
}

// Submit scores the active session and records the result. A failure to
// save progress does not fail the submit; it is reported through Saved.
func (s *QuizService) Submit(sessionID string) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return SubmitResult{}, err
	}

	score, record, err := session.Submit(s.now())
	if err != nil {
		return SubmitResult{}, err
	}

	saved := true
	if err := s.progress.Record(record); err != nil {
		saved = false
	}

	s.logger.WithFields(logrus.Fields{
		"session":  session.ID(),
		"category": session.Category(),
		"answered": session.Answered(),
		"correct":  score.Correct,
		"total":    score.Total,
		"saved":    saved,
	}).Info("Quiz submitted")

	return SubmitResult{
		Session: session.Snapshot(),
		Score:   score,
		Percent: score.Percent(),
		Message: score.Message(),
		Saved:   saved,
	}, nil
}

// Discard drops the active session
func (s *QuizService) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

func (s *QuizService) lookup(sessionID string) (*quiz.Session, error) {
	if s.active == nil {
		return nil, ErrNoActiveSession
	}
	if s.active.ID() != sessionID {
		return nil, ErrSessionNotFound
	}
	return s.active, nil
}
