package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"funenglish/internal/security"
)

// AudioURLPrefix is where cached speech files are served
const AudioURLPrefix = "/audio/"

// RouterConfig holds everything the router serves
type RouterConfig struct {
	Catalog  *CatalogHandler
	Quiz     *QuizHandler
	Speech   *SpeechHandler
	Teacher  *TeacherHandler
	Auth     *security.TeacherAuth
	Limiter  *security.RateLimiter
	AudioDir string
	Origins  []string
	Logger   logrus.FieldLogger

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that sets those headers.
	TrustProxy bool
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(Logging(cfg.Logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.AudioDir != "" {
		fs := http.StripPrefix(AudioURLPrefix, http.FileServer(http.Dir(cfg.AudioDir)))
		r.Get(AudioURLPrefix+"*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			fs.ServeHTTP(w, r)
		})
	}

	limit := func(next http.Handler) http.Handler { return next }
	if cfg.Limiter != nil {
		limit = cfg.Limiter.Middleware
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/categories", cfg.Catalog.ListCategories)
		r.Get("/categories/{category}/learn/{index}", cfg.Catalog.Learn)

		r.Route("/quiz", func(r chi.Router) {
			r.Post("/", cfg.Quiz.StartQuiz)
			r.Get("/", cfg.Quiz.ShowQuiz)
			r.Delete("/", cfg.Quiz.ExitQuiz)
			r.Put("/{sessionID}/answers/{promptID}", cfg.Quiz.RecordAnswer)
			r.Post("/{sessionID}/submit", cfg.Quiz.SubmitQuiz)
		})

		r.With(limit).Post("/speak", cfg.Speech.Speak)

		r.Route("/teacher", func(r chi.Router) {
			r.With(limit).Post("/login", cfg.Teacher.Login)
			r.Get("/progress", cfg.Teacher.ShowProgress)

			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.Middleware)
				r.Get("/progress.xlsx", cfg.Teacher.ExportProgress)
				r.Delete("/progress", cfg.Teacher.ResetProgress)
				r.Post("/report", cfg.Teacher.SendReport)
			})
		})
	})

	return r
}
