package models

// Item represents a learnable word in a word category
type Item struct {
	ID    string `json:"id"`
	Word  string `json:"word"`
	Hint  string `json:"hint,omitempty"`
	Glyph string `json:"glyph"`
}

// Phrase returns the text spoken for the item. With more set the hint is
// appended, e.g. "Dog. Barks".
func (i Item) Phrase(more bool) string {
	if more && i.Hint != "" {
		return i.Word + ". " + i.Hint
	}
	return i.Word
}

// SentenceItem represents a target sentence split into orderable pieces
type SentenceItem struct {
	ID       string   `json:"id"`
	Sentence string   `json:"sentence"`
	Pieces   []string `json:"pieces"`
	Glyph    string   `json:"glyph"`
}
