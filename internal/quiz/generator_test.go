package quiz

import (
	"errors"
	"slices"
	"testing"

	"funenglish/internal/catalog"
	"funenglish/internal/models"
)

func TestGenerateMatchAllCategories(t *testing.T) {
	cat := catalog.Default()
	gen := NewGenerator(cat, NewSource(7))

	for _, name := range cat.Names() {
		t.Run(name, func(t *testing.T) {
			c, _ := cat.Lookup(name)

			questions, err := gen.Generate(name, models.ModeMatch)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(questions) != c.Len() {
				t.Fatalf("got %d questions, want %d", len(questions), c.Len())
			}

			for i, q := range questions {
				if q.PromptID != c.Entry(i).ID {
					t.Errorf("question %d: prompt %q out of catalog order", i, q.PromptID)
				}
				if len(q.Options) != c.Len() {
					t.Errorf("question %d: %d options, want %d", i, len(q.Options), c.Len())
				}
				hits := 0
				for _, opt := range q.Options {
					if opt == q.CorrectAnswer {
						hits++
					}
				}
				if hits != 1 {
					t.Errorf("question %d: correct answer appears %d times in options", i, hits)
				}
			}
		})
	}
}

func TestGenerateMatchWordPrompts(t *testing.T) {
	gen := NewGenerator(catalog.Default(), NewSource(1))

	questions, err := gen.Generate("Animals", models.ModeMatch)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if questions[0].Prompt != "Dog" || questions[0].CorrectAnswer != "🐶" {
		t.Errorf("first question = %+v, want Dog / 🐶", questions[0])
	}
}

func TestGenerateSentenceNeverInOrder(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		gen := NewGenerator(catalog.Default(), NewSource(seed))

		questions, err := gen.Generate("Sentences", models.ModeSentence)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(questions) != 3 {
			t.Fatalf("got %d questions, want 3", len(questions))
		}
		for _, q := range questions {
			if slices.Equal(q.ShuffledOrder, q.CorrectOrder) {
				t.Fatalf("seed %d: %s left in order: %v", seed, q.PromptID, q.ShuffledOrder)
			}
			sorted := slices.Clone(q.ShuffledOrder)
			slices.Sort(sorted)
			want := slices.Clone(q.CorrectOrder)
			slices.Sort(want)
			if !slices.Equal(sorted, want) {
				t.Fatalf("seed %d: %v is not a permutation of %v", seed, q.ShuffledOrder, q.CorrectOrder)
			}
		}
	}
}

func TestGenerateSentenceReshufflesIdentity(t *testing.T) {
	cat, err := catalog.New([]byte(`{"categories":[{"name":"S","kind":"sentences","sentences":[
		{"id":"s2","sentence":"I like apples.","pieces":["I","like","apples"],"glyph":"🍎"}]}]}`))
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	// The first shuffle draws the identity, the second moves everything
	src := &scriptedSource{draws: []int{2, 1, 0, 0}}
	questions, err := NewGenerator(cat, src).Generate("S", models.ModeSentence)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{"like", "apples", "I"}
	if !slices.Equal(questions[0].ShuffledOrder, want) {
		t.Errorf("ShuffledOrder = %v, want %v", questions[0].ShuffledOrder, want)
	}
}

func TestGenerateSentenceUnorderablePieces(t *testing.T) {
	cat, err := catalog.New([]byte(`{"categories":[{"name":"S","kind":"sentences","sentences":[
		{"id":"one","sentence":"Hi.","pieces":["Hi"],"glyph":"👋"},
		{"id":"same","sentence":"No no.","pieces":["no","no"],"glyph":"🙅"}]}]}`))
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	questions, err := NewGenerator(cat, NewSource(3)).Generate("S", models.ModeSentence)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, q := range questions {
		if !slices.Equal(q.ShuffledOrder, q.CorrectOrder) {
			t.Errorf("%s: ShuffledOrder = %v, want %v", q.PromptID, q.ShuffledOrder, q.CorrectOrder)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	empty, err := catalog.New([]byte(`{"categories":[{"name":"Empty","kind":"words","items":[]}]}`))
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	tests := []struct {
		name     string
		catalog  *catalog.Catalog
		category string
		mode     models.Mode
		wantErr  error
	}{
		{
			name:     "unknown mode",
			catalog:  catalog.Default(),
			category: "Colors",
			mode:     "spelling",
			wantErr:  ErrUnsupportedMode,
		},
		{
			name:     "sentence mode on word category",
			catalog:  catalog.Default(),
			category: "Colors",
			mode:     models.ModeSentence,
			wantErr:  ErrUnsupportedMode,
		},
		{
			name:     "unknown category",
			catalog:  catalog.Default(),
			category: "Vehicles",
			mode:     models.ModeMatch,
			wantErr:  catalog.ErrUnknownCategory,
		},
		{
			name:     "empty category",
			catalog:  empty,
			category: "Empty",
			mode:     models.ModeMatch,
			wantErr:  ErrEmptyCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.catalog, NewSource(1)).Generate(tt.category, tt.mode)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
