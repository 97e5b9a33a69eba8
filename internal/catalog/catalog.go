package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"funenglish/internal/models"
)

//go:embed data/categories.json
var defaultData []byte

// ErrUnknownCategory is returned for a category name outside the catalog
var ErrUnknownCategory = errors.New("unknown category")

// ErrWrongKind is returned when a category is read through the accessor of the other kind
var ErrWrongKind = errors.New("wrong category kind")

// Kind tells which item type a category holds
type Kind string

const (
	KindWords     Kind = "words"
	KindSentences Kind = "sentences"
)

// Category is a named group of vocabulary items or sentence items
type Category struct {
	Name      string                `json:"name"`
	Kind      Kind                  `json:"kind"`
	Preview   string                `json:"preview"`
	Items     []models.Item         `json:"items,omitempty"`
	Sentences []models.SentenceItem `json:"sentences,omitempty"`
}

// Len returns the number of learnable entries in the category
func (c *Category) Len() int {
	if c.Kind == KindSentences {
		return len(c.Sentences)
	}
	return len(c.Items)
}

// Entry is a kind-independent view of a catalog entry used by the learning screen
type Entry struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Hint   string `json:"hint,omitempty"`
	Glyph  string `json:"glyph"`
	Speech string `json:"speech"`
}

// Entry returns the i-th entry of the category. The caller keeps i in range.
func (c *Category) Entry(i int) Entry {
	if c.Kind == KindSentences {
		s := c.Sentences[i]
		return Entry{ID: s.ID, Label: s.Sentence, Glyph: s.Glyph, Speech: s.Sentence}
	}
	item := c.Items[i]
	return Entry{ID: item.ID, Label: item.Word, Hint: item.Hint, Glyph: item.Glyph, Speech: item.Phrase(true)}
}

// Catalog is the immutable set of categories available to the app
type Catalog struct {
	categories []*Category
	byName     map[string]*Category
}

type catalogFile struct {
	Categories []*Category `json:"categories"`
}

var defaultCatalog *Catalog

func init() {
	c, err := New(defaultData)
	if err != nil {
		panic(fmt.Sprintf("funenglish: load catalog: %v", err))
	}
	defaultCatalog = c
}

// Default returns the catalog embedded in the binary
func Default() *Catalog {
	return defaultCatalog
}

// New parses and validates a JSON catalog.
// Item IDs and glyphs must be unique within a category; glyphs double as
// quiz answers, so a duplicate would make scoring ambiguous.
func New(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]*Category, len(file.Categories))}
	for _, cat := range file.Categories {
		if cat.Name == "" {
			return nil, errors.New("category name is required")
		}
		if _, exists := c.byName[cat.Name]; exists {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		if err := validateCategory(cat); err != nil {
			return nil, err
		}
		c.categories = append(c.categories, cat)
		c.byName[cat.Name] = cat
	}

	return c, nil
}

func validateCategory(cat *Category) error {
	ids := make(map[string]bool)
	glyphs := make(map[string]bool)

	check := func(id, glyph string) error {
		if id == "" || glyph == "" {
			return fmt.Errorf("category %q: item id and glyph are required", cat.Name)
		}
		if ids[id] {
			return fmt.Errorf("category %q: duplicate item id %q", cat.Name, id)
		}
		if glyphs[glyph] {
			return fmt.Errorf("category %q: duplicate glyph %q for item %q", cat.Name, glyph, id)
		}
		ids[id] = true
		glyphs[glyph] = true
		return nil
	}

	switch cat.Kind {
	case KindWords:
		for _, item := range cat.Items {
			if err := check(item.ID, item.Glyph); err != nil {
				return err
			}
		}
	case KindSentences:
		for _, s := range cat.Sentences {
			if err := check(s.ID, s.Glyph); err != nil {
				return err
			}
			if len(s.Pieces) == 0 {
				return fmt.Errorf("category %q: sentence %q has no pieces", cat.Name, s.ID)
			}
		}
	default:
		return fmt.Errorf("category %q: unknown kind %q", cat.Name, cat.Kind)
	}
	return nil
}

// Names returns the category names in display order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Categories returns all categories in display order
func (c *Catalog) Categories() []*Category {
	out := make([]*Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Has reports whether name is a catalog category
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Lookup returns the named category
func (c *Catalog) Lookup(name string) (*Category, error) {
	cat, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return cat, nil
}

// ItemsFor returns the word items of a category in catalog order.
// Sentence categories are rejected with ErrWrongKind.
func (c *Catalog) ItemsFor(name string) ([]models.Item, error) {
	cat, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	if cat.Kind != KindWords {
		return nil, fmt.Errorf("%w: %q holds sentences", ErrWrongKind, name)
	}
	items := make([]models.Item, len(cat.Items))
	copy(items, cat.Items)
	return items, nil
}

// SentencesFor returns the sentence items of a category in catalog order
func (c *Catalog) SentencesFor(name string) ([]models.SentenceItem, error) {
	cat, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	if cat.Kind != KindSentences {
		return nil, fmt.Errorf("%w: %q holds words", ErrWrongKind, name)
	}
	sentences := make([]models.SentenceItem, len(cat.Sentences))
	copy(sentences, cat.Sentences)
	return sentences, nil
}
