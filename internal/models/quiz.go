package models

// Mode selects how a quiz is played
type Mode string

const (
	// ModeMatch asks the learner to pick the glyph for each prompt
	ModeMatch Mode = "match"
	// ModeSentence asks the learner to put sentence pieces in order
	ModeSentence Mode = "sentence"
)

// Valid reports whether m is a supported quiz mode
func (m Mode) Valid() bool {
	return m == ModeMatch || m == ModeSentence
}

// QuizQuestion is a single generated question.
// Match questions fill CorrectAnswer and Options; sentence questions fill
// CorrectOrder and ShuffledOrder.
type QuizQuestion struct {
	PromptID      string   `json:"prompt_id"`
	Prompt        string   `json:"prompt"`
	Glyph         string   `json:"glyph,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectOrder  []string `json:"correct_order,omitempty"`
	ShuffledOrder []string `json:"shuffled_order,omitempty"`
}

// Answer is the learner's current choice for a question
type Answer struct {
	Choice string   `json:"choice,omitempty"`
	Order  []string `json:"order,omitempty"`
}

// ScoreResult is the outcome of a submitted quiz
type ScoreResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percent returns the share of correct answers, 0-100
func (s ScoreResult) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// Message returns the feedback shown on the result screen
func (s ScoreResult) Message() string {
	switch {
	case s.Correct == s.Total:
		return "Excellent! Perfect score 🎉"
	case s.Correct*2 >= s.Total:
		return "Good job! Keep practising 🙂"
	default:
		return "Nice try, keep practicing!"
	}
}
