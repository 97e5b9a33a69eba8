package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"funenglish/internal/audio"
	"funenglish/internal/catalog"
	"funenglish/internal/logging"
	"funenglish/internal/progress"
	"funenglish/internal/quiz"
	"funenglish/internal/security"
	"funenglish/internal/service"
)

type memoryStorage struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type fakeSpeaker struct {
	filename string
	err      error
	texts    []string
}

func (f *fakeSpeaker) Speak(ctx context.Context, text string) (string, error) {
	f.texts = append(f.texts, text)
	return f.filename, f.err
}

type testEnv struct {
	server   *httptest.Server
	storage  *memoryStorage
	speaker  *fakeSpeaker
	progress *service.ProgressService
}

type envOptions struct {
	pin        string
	speaker    audio.Speaker
	limiter    *security.RateLimiter
	trustProxy bool
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	logger := logging.Discard()
	cat := catalog.Default()

	storage := &memoryStorage{values: make(map[string]string)}
	persistence := progress.NewPersistence(storage, progress.DefaultKey, cat.Has, logger)
	progressService := service.NewProgressService(persistence, logger)
	quizService := service.NewQuizService(quiz.NewGenerator(cat, quiz.NewSource(11)), progressService, logger)
	reportService := service.NewReportService(cat, progressService, nil)

	auth, err := security.NewTeacherAuth(opts.pin, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTeacherAuth() error = %v", err)
	}

	speaker := &fakeSpeaker{filename: "tts_abc.mp3"}
	var spk audio.Speaker = speaker
	if opts.speaker != nil {
		spk = opts.speaker
	}

	router := NewRouter(RouterConfig{
		Catalog:    NewCatalogHandler(cat, progressService, logger),
		Quiz:       NewQuizHandler(quizService, logger),
		Speech:     NewSpeechHandler(spk, AudioURLPrefix, logger),
		Teacher:    NewTeacherHandler(auth, reportService, progressService, "", logger),
		Auth:       auth,
		Limiter:    opts.limiter,
		Logger:     logger,
		TrustProxy: opts.trustProxy,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, storage: storage, speaker: speaker, progress: progressService}
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: status = %d, want %d (body %s)", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}
