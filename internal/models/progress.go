package models

import "time"

// ProgressRecord is the persisted outcome of the latest submitted quiz for a category.
// Category is the key of the stored mapping and is not part of the record body.
type ProgressRecord struct {
	Category string    `json:"-"`
	Score    int       `json:"score"`
	Total    int       `json:"total"`
	Date     time.Time `json:"date"`
}

// Valid reports whether the record holds a plausible score
func (r ProgressRecord) Valid() bool {
	return r.Score >= 0 && r.Total >= 0 && r.Score <= r.Total
}
