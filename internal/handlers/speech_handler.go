package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"funenglish/internal/audio"
	"funenglish/internal/validation"
)

// SpeechHandler turns text into a playable audio URL
type SpeechHandler struct {
	speaker   audio.Speaker
	urlPrefix string
	logger    logrus.FieldLogger
}

// NewSpeechHandler creates a new speech handler. Audio files are served under urlPrefix.
func NewSpeechHandler(speaker audio.Speaker, urlPrefix string, logger logrus.FieldLogger) *SpeechHandler {
	return &SpeechHandler{
		speaker:   speaker,
		urlPrefix: urlPrefix,
		logger:    logger,
	}
}

type speakRequest struct {
	Text string `json:"text"`
}

type speakResponse struct {
	AudioURL string `json:"audio_url"`
}

// Speak synthesizes text. Speech is best-effort: when it is disabled or
// fails the response is 204 and the client stays silent.
func (h *SpeechHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", err)
		return
	}
	if err := validation.ValidateSpeechText(req.Text); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	text := strings.TrimSpace(req.Text)

	filename, err := h.speaker.Speak(r.Context(), text)
	if err != nil {
		h.logger.WithError(err).WithField("text", text).Warn("Speech unavailable")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if filename == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, http.StatusOK, speakResponse{AudioURL: path.Join(h.urlPrefix, filename)})
}
