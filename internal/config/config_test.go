package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Empty variables fall back to defaults
	for _, key := range []string{"PORT", "DATABASE_TYPE", "PROGRESS_KEY", "SPEECH_RATE", "TOKEN_TTL", "TEACHER_PIN", "SES_FROM_EMAIL", "REPORT_SCHEDULE", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.ProgressKey != "lg_english_progress_v1" {
		t.Errorf("ProgressKey = %q", cfg.ProgressKey)
	}
	if cfg.SpeechRate != 0.9 {
		t.Errorf("SpeechRate = %v, want 0.9", cfg.SpeechRate)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want 12h", cfg.TokenTTL)
	}
	if cfg.TeacherAuthEnabled() {
		t.Error("teacher auth should be off without a PIN")
	}
	if cfg.EmailEnabled() {
		t.Error("email should be off without SES_FROM_EMAIL")
	}
	if cfg.TrustProxy {
		t.Error("forwarded headers should not be trusted by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/funenglish?sslmode=disable")
	t.Setenv("SPEECH_ENABLED", "false")
	t.Setenv("SPEAK_RATE_WINDOW", "30s")
	t.Setenv("TEACHER_PIN", "1234")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://example.com")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want 9000", cfg.ServerPort)
	}
	if cfg.DatabaseType != "postgres" || cfg.DatabaseURL == "" {
		t.Errorf("database = %q %q", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.SpeechEnabled {
		t.Error("SpeechEnabled should be false")
	}
	if cfg.SpeakRateWindow != 30*time.Second {
		t.Errorf("SpeakRateWindow = %v, want 30s", cfg.SpeakRateWindow)
	}
	if !cfg.TeacherAuthEnabled() {
		t.Error("teacher auth should be on with a PIN")
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy should be true")
	}

	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "https://example.com" {
		t.Errorf("AllowedOrigins() = %v", origins)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DatabaseType: "sqlite",
			SpeechRate:   0.9,
			TokenTTL:     time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "unknown database", mutate: func(c *Config) { c.DatabaseType = "oracle" }, wantErr: true},
		{name: "postgres without url", mutate: func(c *Config) { c.DatabaseType = "postgres" }, wantErr: true},
		{name: "mysql with url", mutate: func(c *Config) { c.DatabaseType = "mysql"; c.DatabaseURL = "user:pw@/db" }, wantErr: false},
		{name: "zero speech rate", mutate: func(c *Config) { c.SpeechRate = 0 }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.SpeakRateLimit = -1 }, wantErr: true},
		{name: "zero token ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: true},
		{name: "schedule without recipient", mutate: func(c *Config) { c.ReportSchedule = "0 18 * * 5" }, wantErr: true},
		{name: "schedule with recipient", mutate: func(c *Config) { c.ReportSchedule = "0 18 * * 5"; c.ReportEmail = "teacher@example.com" }, wantErr: false},
		{name: "bad report email", mutate: func(c *Config) { c.ReportEmail = "teacher" }, wantErr: true},
		{name: "bad sender email", mutate: func(c *Config) { c.SESFromEmail = "noreply@" }, wantErr: true},
		{name: "non-numeric pin", mutate: func(c *Config) { c.TeacherPIN = "abcd" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
