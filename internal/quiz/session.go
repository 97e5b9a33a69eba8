package quiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"funenglish/internal/models"
)

// State is the lifecycle position of a quiz session
type State int

const (
	StateBuilding State = iota
	StateInProgress
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateInProgress:
		return "in_progress"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is one quiz attempt for a single category and mode.
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	id        string
	category  string
	mode      models.Mode
	questions []models.QuizQuestion
	index     map[string]int
	answers   map[string]models.Answer
	state     State
	result    models.ScoreResult
}

// Start generates questions and opens a session ready for answers.
// A generator error is returned as is and no session is created.
func Start(gen *Generator, category string, mode models.Mode) (*Session, error) {
	s := &Session{
		id:       uuid.New().String(),
		category: category,
		mode:     mode,
		state:    StateBuilding,
	}

	questions, err := gen.Generate(category, mode)
	if err != nil {
		return nil, err
	}

	s.questions = questions
	s.index = make(map[string]int, len(questions))
	for i, q := range questions {
		s.index[q.PromptID] = i
	}
	s.answers = make(map[string]models.Answer, len(questions))
	s.state = StateInProgress
	return s, nil
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Category() string   { return s.category }
func (s *Session) Mode() models.Mode  { return s.mode }
func (s *Session) State() State       { return s.state }
func (s *Session) QuestionCount() int { return len(s.questions) }

// RecordAnswer stores the learner's current answer for a prompt, replacing any earlier one
func (s *Session) RecordAnswer(promptID string, answer models.Answer) error {
	if s.state == StateSubmitted {
		return ErrSessionAlreadySubmitted
	}
	if _, ok := s.index[promptID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPrompt, promptID)
	}

	s.answers[promptID] = models.Answer{
		Choice: answer.Choice,
		Order:  slices.Clone(answer.Order),
	}
	return nil
}

// Answered returns how many prompts currently have an answer
func (s *Session) Answered() int {
	return len(s.answers)
}

// Submit closes the session and scores it. The returned record carries the
// category, the score and the submission time for the progress store.
func (s *Session) Submit(at time.Time) (models.ScoreResult, models.ProgressRecord, error) {
	if s.state == StateSubmitted {
		return models.ScoreResult{}, models.ProgressRecord{}, ErrSessionAlreadySubmitted
	}

	result := models.ScoreResult{Total: len(s.questions)}
	for _, q := range s.questions {
		answer, ok := s.answers[q.PromptID]
		if ok && s.isCorrect(q, answer) {
			result.Correct++
		}
	}

	s.result = result
	s.state = StateSubmitted

	record := models.ProgressRecord{
		Category: s.category,
		Score:    result.Correct,
		Total:    result.Total,
		Date:     at.UTC(),
	}
	return result, record, nil
}

func (s *Session) isCorrect(q models.QuizQuestion, answer models.Answer) bool {
	if s.mode == models.ModeSentence {
		return slices.Equal(answer.Order, q.CorrectOrder)
	}
	return answer.Choice != "" && answer.Choice == q.CorrectAnswer
}

// View is a read-only copy of a session for presentation
type View struct {
	ID        string                   `json:"id"`
	Category  string                   `json:"category"`
	Mode      models.Mode              `json:"mode"`
	State     string                   `json:"state"`
	Questions []models.QuizQuestion    `json:"questions"`
	Answers   map[string]models.Answer `json:"answers"`
	Answered  int                      `json:"answered"`
	Result    *models.ScoreResult      `json:"result,omitempty"`
	Message   string                   `json:"message,omitempty"`
}

// Snapshot copies the session. Correct answers are withheld until the
// session is submitted.
func (s *Session) Snapshot() View {
	v := View{
		ID:        s.id,
		Category:  s.category,
		Mode:      s.mode,
		State:     s.state.String(),
		Questions: make([]models.QuizQuestion, len(s.questions)),
		Answers:   make(map[string]models.Answer, len(s.answers)),
		Answered:  s.Answered(),
	}

	for i, q := range s.questions {
		q.Options = slices.Clone(q.Options)
		q.ShuffledOrder = slices.Clone(q.ShuffledOrder)
		q.CorrectOrder = slices.Clone(q.CorrectOrder)
		if s.state != StateSubmitted {
			q.CorrectAnswer = ""
			q.CorrectOrder = nil
		}
		v.Questions[i] = q
	}
	for id, a := range s.answers {
		v.Answers[id] = models.Answer{Choice: a.Choice, Order: slices.Clone(a.Order)}
	}

	if s.state == StateSubmitted {
		result := s.result
		v.Result = &result
		v.Message = result.Message()
	}
	return v
}
