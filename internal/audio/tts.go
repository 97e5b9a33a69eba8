package audio

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Speaker turns text into a playable audio file.
// An empty filename with a nil error means nothing will be played.
type Speaker interface {
	Speak(ctx context.Context, text string) (string, error)
}

// NoopSpeaker is used when speech is disabled
type NoopSpeaker struct{}

// Speak does nothing
func (NoopSpeaker) Speak(ctx context.Context, text string) (string, error) {
	return "", nil
}

const (
	defaultTTSEndpoint = "https://translate.google.com/translate_tts"
	ttsRequestTimeout  = 10 * time.Second
	maxTextLength      = 200
)

// ErrTextTooLong is returned for text the TTS endpoint will not accept
var ErrTextTooLong = errors.New("text too long to speak")

// TTSService provides text-to-speech backed by Google Translate TTS.
// Only one request is in flight at a time: starting a new utterance
// cancels the previous one.
type TTSService struct {
	audioDir string
	endpoint string
	language string
	rate     float64
	client   *http.Client
	logger   logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// Option configures a TTSService
type Option func(*TTSService)

// WithLanguage sets the spoken language code (default "en")
func WithLanguage(lang string) Option {
	return func(s *TTSService) { s.language = lang }
}

// WithRate sets the speaking speed, 1.0 being normal
func WithRate(rate float64) Option {
	return func(s *TTSService) { s.rate = rate }
}

// WithEndpoint overrides the TTS endpoint URL
func WithEndpoint(endpoint string) Option {
	return func(s *TTSService) { s.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *TTSService) { s.client = client }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *TTSService) { s.logger = logger }
}

// NewTTSService creates a new TTS service caching audio in audioDir
func NewTTSService(audioDir string, opts ...Option) (*TTSService, error) {
	s := &TTSService{
		audioDir: audioDir,
		endpoint: defaultTTSEndpoint,
		language: "en",
		rate:     0.9,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return s, nil
}

// Speak returns the cached audio file for text, fetching it first if needed
func (s *TTSService) Speak(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return "", ErrTextTooLong
	}

	ctx, done := s.begin(ctx)
	defer done()

	filename := s.filenameFor(text)
	path := filepath.Join(s.audioDir, filename)
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetch(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	s.logger.WithField("file", filename).Debug("generated speech audio")
	return filename, nil
}

// begin cancels any in-flight utterance and registers a new one
func (s *TTSService) begin(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithTimeout(parent, ttsRequestTimeout)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	id := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	return ctx, func() {
		s.mu.Lock()
		if s.seq == id {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}
}

// filenameFor names the cache file after the language, rate and text
func (s *TTSService) filenameFor(text string) string {
	sum := sha1.Sum([]byte(s.language + "|" + s.rateParam() + "|" + text))
	return "tts_" + hex.EncodeToString(sum[:10]) + ".mp3"
}

func (s *TTSService) rateParam() string {
	return strconv.FormatFloat(s.rate, 'f', -1, 64)
}

func (s *TTSService) fetch(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.language)
	params.Set("client", "tw-ob")
	params.Set("ttsspeed", s.rateParam())
	params.Set("textlen", strconv.Itoa(len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Google rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.audioDir, ".tts-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return os.Rename(tmp.Name(), outputPath)
}

// Prefetch generates audio for every text, stopping at the first failure
func (s *TTSService) Prefetch(ctx context.Context, texts []string) (map[string]string, error) {
	results := make(map[string]string, len(texts))

	for _, text := range texts {
		filename, err := s.Speak(ctx, text)
		if err != nil {
			return results, fmt.Errorf("failed to generate audio for '%s': %w", text, err)
		}
		results[text] = filename
	}

	return results, nil
}

// CachedFiles returns the MP3 files in the audio directory
func (s *TTSService) CachedFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}

	return audioFiles, nil
}

// Purge removes every cached MP3 file and returns how many were deleted
func (s *TTSService) Purge() (int, error) {
	files, err := s.CachedFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range files {
		if err := os.Remove(filepath.Join(s.audioDir, name)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}
