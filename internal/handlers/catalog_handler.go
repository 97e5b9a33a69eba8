package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"funenglish/internal/catalog"
	"funenglish/internal/learn"
	"funenglish/internal/service"
)

// CatalogHandler serves the home and learning screens
type CatalogHandler struct {
	catalog  *catalog.Catalog
	progress *service.ProgressService
	logger   logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog, progress *service.ProgressService, logger logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		progress: progress,
		logger:   logger,
	}
}

// CategorySummary is one tile of the home screen
type CategorySummary struct {
	Name        string       `json:"name"`
	Kind        catalog.Kind `json:"kind"`
	Preview     string       `json:"preview"`
	Count       int          `json:"count"`
	LastAttempt *time.Time   `json:"last_attempt,omitempty"`
	Score       *int         `json:"score,omitempty"`
	Total       *int         `json:"total,omitempty"`
}

// LearnView is the learning screen for a single entry
type LearnView struct {
	Category string        `json:"category"`
	Index    int           `json:"index"`
	Count    int           `json:"count"`
	Prev     int           `json:"prev"`
	Next     int           `json:"next"`
	Entry    catalog.Entry `json:"entry"`
}

// ListCategories lists categories in display order with their last attempt
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	store := h.progress.Snapshot()
	categories := h.catalog.Categories()

	summaries := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		summary := CategorySummary{
			Name:    c.Name,
			Kind:    c.Kind,
			Preview: c.Preview,
			Count:   c.Len(),
		}
		if rec, ok := store.Get(c.Name); ok {
			date, score, total := rec.Date, rec.Score, rec.Total
			summary.LastAttempt = &date
			summary.Score = &score
			summary.Total = &total
		}
		summaries = append(summaries, summary)
	}

	respondWithJSON(w, http.StatusOK, summaries)
}

// Learn shows one entry of a category. Out of range indexes are clamped.
func (h *CatalogHandler) Learn(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	cat, err := h.catalog.Lookup(name)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			respondWithError(w, h.logger, http.StatusNotFound, "Category not found", "", err)
			return
		}
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to load category", "", err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid index", "", err)
		return
	}

	count := cat.Len()
	if count == 0 {
		respondWithError(w, h.logger, http.StatusNotFound, "Category has no items", "", nil)
		return
	}

	index = learn.Clamp(index, count)
	respondWithJSON(w, http.StatusOK, LearnView{
		Category: cat.Name,
		Index:    index,
		Count:    count,
		Prev:     learn.Retreat(index, count),
		Next:     learn.Advance(index, count),
		Entry:    cat.Entry(index),
	})
}
