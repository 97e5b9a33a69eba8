package quiz

import (
	"fmt"
	"slices"

	"funenglish/internal/catalog"
	"funenglish/internal/models"
)

// Generator builds quiz questions from the catalog
type Generator struct {
	catalog *catalog.Catalog
	src     Source
}

// NewGenerator creates a generator drawing randomness from src
func NewGenerator(cat *catalog.Catalog, src Source) *Generator {
	return &Generator{catalog: cat, src: src}
}

// Generate returns the questions for a category in catalog order.
//
// Match mode works for every category: word items are prompted by their
// word, sentence items by their sentence, and the answer is the glyph.
// Sentence mode needs a sentence category.
func (g *Generator) Generate(category string, mode models.Mode) ([]models.QuizQuestion, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}

	cat, err := g.catalog.Lookup(category)
	if err != nil {
		return nil, err
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyCategory, category)
	}

	switch mode {
	case models.ModeSentence:
		if cat.Kind != catalog.KindSentences {
			return nil, fmt.Errorf("%w: %q cannot be played in %s mode", ErrUnsupportedMode, category, mode)
		}
		return g.sentenceQuestions(cat.Sentences), nil
	default:
		return g.matchQuestions(cat), nil
	}
}

func (g *Generator) matchQuestions(cat *catalog.Category) []models.QuizQuestion {
	n := cat.Len()
	glyphs := make([]string, n)
	for i := 0; i < n; i++ {
		glyphs[i] = cat.Entry(i).Glyph
	}

	questions := make([]models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		entry := cat.Entry(i)
		questions = append(questions, models.QuizQuestion{
			PromptID:      entry.ID,
			Prompt:        entry.Label,
			CorrectAnswer: entry.Glyph,
			Options:       Shuffle(g.src, glyphs),
		})
	}
	return questions
}

func (g *Generator) sentenceQuestions(sentences []models.SentenceItem) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, 0, len(sentences))
	for _, s := range sentences {
		correct := slices.Clone(s.Pieces)
		questions = append(questions, models.QuizQuestion{
			PromptID:      s.ID,
			Prompt:        s.Sentence,
			Glyph:         s.Glyph,
			CorrectOrder:  correct,
			ShuffledOrder: g.scramble(correct),
		})
	}
	return questions
}

// scramble shuffles pieces until the order differs from the original.
// Pieces that are all equal cannot be reordered and are returned as is.
func (g *Generator) scramble(pieces []string) []string {
	shuffled := Shuffle(g.src, pieces)
	if !canReorder(pieces) {
		return shuffled
	}
	for slices.Equal(shuffled, pieces) {
		shuffled = Shuffle(g.src, pieces)
	}
	return shuffled
}

func canReorder(pieces []string) bool {
	if len(pieces) < 2 {
		return false
	}
	for _, p := range pieces[1:] {
		if p != pieces[0] {
			return true
		}
	}
	return false
}
