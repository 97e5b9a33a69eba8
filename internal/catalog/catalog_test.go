package catalog

import (
	"errors"
	"testing"
)

func TestDefaultCatalogCategories(t *testing.T) {
	c := Default()

	want := []string{"Colors", "Animals", "Fruits", "Sentences"}
	names := c.Names()
	if len(names) != len(want) {
		t.Fatalf("Names() returned %d categories, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("position %d: got %q, want %q", i, names[i], name)
		}
	}

	for _, name := range names {
		cat, err := c.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if cat.Len() == 0 {
			t.Errorf("category %q is empty", name)
		}
	}
}

func TestItemsFor(t *testing.T) {
	c := Default()

	items, err := c.ItemsFor("Colors")
	if err != nil {
		t.Fatalf("ItemsFor() error = %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(items))
	}
	if items[0].ID != "red" || items[0].Glyph != "🔴" {
		t.Errorf("first color = %+v, want red", items[0])
	}

	// Callers must not be able to mutate the catalog through the returned slice
	items[0].Word = "changed"
	again, _ := c.ItemsFor("Colors")
	if again[0].Word != "Red" {
		t.Errorf("catalog was mutated through ItemsFor result")
	}
}

func TestSentencesFor(t *testing.T) {
	sentences, err := Default().SentencesFor("Sentences")
	if err != nil {
		t.Fatalf("SentencesFor() error = %v", err)
	}
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sentences))
	}
	if len(sentences[0].Pieces) != 4 {
		t.Errorf("expected 4 pieces in first sentence, got %d", len(sentences[0].Pieces))
	}
}

func TestAccessorsNeverEmptyForValidCategory(t *testing.T) {
	c := Default()

	for _, name := range c.Names() {
		t.Run(name, func(t *testing.T) {
			cat, err := c.Lookup(name)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}

			items, itemsErr := c.ItemsFor(name)
			sentences, sentencesErr := c.SentencesFor(name)

			switch cat.Kind {
			case KindWords:
				if itemsErr != nil || len(items) == 0 {
					t.Errorf("ItemsFor() = %d items, error %v; want non-empty", len(items), itemsErr)
				}
				if !errors.Is(sentencesErr, ErrWrongKind) {
					t.Errorf("SentencesFor() error = %v, want ErrWrongKind", sentencesErr)
				}
			case KindSentences:
				if sentencesErr != nil || len(sentences) == 0 {
					t.Errorf("SentencesFor() = %d sentences, error %v; want non-empty", len(sentences), sentencesErr)
				}
				if !errors.Is(itemsErr, ErrWrongKind) {
					t.Errorf("ItemsFor() error = %v, want ErrWrongKind", itemsErr)
				}
			default:
				t.Fatalf("unexpected kind %q", cat.Kind)
			}
		})
	}
}

func TestUnknownCategory(t *testing.T) {
	c := Default()

	if _, err := c.Lookup("Vehicles"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Lookup() error = %v, want ErrUnknownCategory", err)
	}
	if _, err := c.ItemsFor("colors"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ItemsFor() is case sensitive, error = %v, want ErrUnknownCategory", err)
	}
	if c.Has("Vehicles") {
		t.Error("Has() should be false for unknown category")
	}
}

func TestEntry(t *testing.T) {
	c := Default()

	animals, _ := c.Lookup("Animals")
	entry := animals.Entry(0)
	if entry.Label != "Dog" || entry.Speech != "Dog. Barks" || entry.Glyph != "🐶" {
		t.Errorf("unexpected word entry: %+v", entry)
	}

	sentences, _ := c.Lookup("Sentences")
	entry = sentences.Entry(1)
	if entry.Label != "I like apples." || entry.Speech != "I like apples." {
		t.Errorf("unexpected sentence entry: %+v", entry)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "valid catalog",
			data:    `{"categories":[{"name":"A","kind":"words","items":[{"id":"a","word":"A","glyph":"🅰"}]}]}`,
			wantErr: false,
		},
		{
			name:    "empty category allowed",
			data:    `{"categories":[{"name":"Empty","kind":"words","items":[]}]}`,
			wantErr: false,
		},
		{
			name:    "duplicate glyph",
			data:    `{"categories":[{"name":"A","kind":"words","items":[{"id":"a","word":"A","glyph":"x"},{"id":"b","word":"B","glyph":"x"}]}]}`,
			wantErr: true,
		},
		{
			name:    "duplicate id",
			data:    `{"categories":[{"name":"A","kind":"words","items":[{"id":"a","word":"A","glyph":"x"},{"id":"a","word":"B","glyph":"y"}]}]}`,
			wantErr: true,
		},
		{
			name:    "duplicate category",
			data:    `{"categories":[{"name":"A","kind":"words"},{"name":"A","kind":"words"}]}`,
			wantErr: true,
		},
		{
			name:    "unknown kind",
			data:    `{"categories":[{"name":"A","kind":"pictures"}]}`,
			wantErr: true,
		},
		{
			name:    "sentence without pieces",
			data:    `{"categories":[{"name":"S","kind":"sentences","sentences":[{"id":"s","sentence":"Hi.","pieces":[],"glyph":"👋"}]}]}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			data:    `{"categories":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
