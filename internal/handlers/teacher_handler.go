package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"funenglish/internal/report"
	"funenglish/internal/security"
	"funenglish/internal/service"
	"funenglish/internal/validation"
)

// ProgressReporter renders stored progress for the teacher view
type ProgressReporter interface {
	Rows() []report.Row
	WriteXLSX(w io.Writer) error
	SendReport(ctx context.Context, toEmail string) error
}

// TeacherHandler serves the teacher view
type TeacherHandler struct {
	auth            *security.TeacherAuth
	reportService   ProgressReporter
	progressService *service.ProgressService
	reportEmail     string
	logger          logrus.FieldLogger
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(auth *security.TeacherAuth, reportService ProgressReporter, progressService *service.ProgressService, reportEmail string, logger logrus.FieldLogger) *TeacherHandler {
	return &TeacherHandler{
		auth:            auth,
		reportService:   reportService,
		progressService: progressService,
		reportEmail:     reportEmail,
		logger:          logger,
	}
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type reportRequest struct {
	Email string `json:"email"`
}

// Login exchanges the teacher PIN for a token
func (h *TeacherHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		respondWithError(w, h.logger, http.StatusNotFound, "Teacher PIN is not configured", "", nil)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", err)
		return
	}

	token, expires, err := h.auth.Login(req.PIN)
	if err != nil {
		if errors.Is(err, security.ErrInvalidPIN) {
			h.logger.WithField("ip", security.GetClientIP(r)).Warn("Teacher login failed")
			respondWithError(w, h.logger, http.StatusUnauthorized, "Invalid PIN", "", nil)
			return
		}
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to log in", "", err)
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

// ShowProgress lists every category with its latest result
func (h *TeacherHandler) ShowProgress(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.reportService.Rows())
}

// ExportProgress downloads the teacher view as a spreadsheet. The workbook
// is rendered in full before any header is sent.
func (h *TeacherHandler) ExportProgress(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.reportService.WriteXLSX(&buf); err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to export progress", "", err)
		return
	}

	filename := fmt.Sprintf("funenglish_progress_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WithError(err).Debug("Client went away during export")
	}
}

// SendReport emails the teacher view. Without a body the configured address is used.
func (h *TeacherHandler) SendReport(w http.ResponseWriter, r *http.Request) {
	req := reportRequest{Email: h.reportEmail}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", err)
			return
		}
		if req.Email == "" {
			req.Email = h.reportEmail
		}
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	if err := h.reportService.SendReport(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			respondWithError(w, h.logger, http.StatusServiceUnavailable, "Email is not configured", "", err)
			return
		}
		respondWithError(w, h.logger, http.StatusBadGateway, "Failed to send report", "", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ResetProgress clears all stored results
func (h *TeacherHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.progressService.Reset(); err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to reset progress", "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
