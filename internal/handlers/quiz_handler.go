package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"funenglish/internal/catalog"
	"funenglish/internal/models"
	"funenglish/internal/quiz"
	"funenglish/internal/service"
)

// QuizHandler handles quiz HTTP requests
type QuizHandler struct {
	quizService *service.QuizService
	logger      logrus.FieldLogger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService, logger logrus.FieldLogger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		logger:      logger,
	}
}

type startQuizRequest struct {
	Category string      `json:"category"`
	Mode     models.Mode `json:"mode"`
}

// StartQuiz starts a new quiz, discarding any previous one
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", err)
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeMatch
	}

	view, err := h.quizService.Start(req.Category, req.Mode)
	if err != nil {
		h.respondWithQuizError(w, err, "Failed to start quiz")
		return
	}
	respondWithJSON(w, http.StatusCreated, view)
}

// ShowQuiz returns the active quiz
func (h *QuizHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizService.Active()
	if err != nil {
		h.respondWithQuizError(w, err, "Failed to load quiz")
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// ExitQuiz drops the active quiz
func (h *QuizHandler) ExitQuiz(w http.ResponseWriter, r *http.Request) {
	h.quizService.Discard()
	w.WriteHeader(http.StatusNoContent)
}

// RecordAnswer stores the learner's answer to one question
func (h *QuizHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var answer models.Answer
	if err := decodeJSON(w, r, &answer); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", err)
		return
	}

	view, err := h.quizService.RecordAnswer(chi.URLParam(r, "sessionID"), chi.URLParam(r, "promptID"), answer)
	if err != nil {
		h.respondWithQuizError(w, err, "Failed to record answer")
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SubmitQuiz scores the quiz
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	result, err := h.quizService.Submit(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondWithQuizError(w, err, "Failed to submit quiz")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *QuizHandler) respondWithQuizError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory):
		respondWithError(w, h.logger, http.StatusNotFound, "Category not found", "", err)
	case errors.Is(err, quiz.ErrUnknownPrompt):
		respondWithError(w, h.logger, http.StatusNotFound, "Question not found", "", err)
	case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, h.logger, http.StatusNotFound, "Quiz not found", "", err)
	case errors.Is(err, quiz.ErrUnsupportedMode):
		respondWithError(w, h.logger, http.StatusBadRequest, "This category cannot be played in that mode", "", err)
	case errors.Is(err, quiz.ErrEmptyCategory):
		respondWithError(w, h.logger, http.StatusBadRequest, "Category has no items", "", err)
	case errors.Is(err, quiz.ErrSessionAlreadySubmitted):
		respondWithError(w, h.logger, http.StatusConflict, "Quiz already submitted", "", err)
	default:
		respondWithError(w, h.logger, http.StatusInternalServerError, fallback, "", err)
	}
}
