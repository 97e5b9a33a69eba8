package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"funenglish/internal/validation"
)

// Config holds application configuration
type Config struct {
	ServerPort      string        `mapstructure:"port"`
	AppBaseURL      string        `mapstructure:"app_base_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     string        `mapstructure:"cors_origins"`
	TrustProxy      bool          `mapstructure:"trust_proxy"`

	DatabaseType string `mapstructure:"database_type"`
	DatabasePath string `mapstructure:"db_path"`
	DatabaseURL  string `mapstructure:"database_url"`
	ProgressKey  string `mapstructure:"progress_key"`

	AudioDir        string        `mapstructure:"audio_dir"`
	SpeechEnabled   bool          `mapstructure:"speech_enabled"`
	SpeechLanguage  string        `mapstructure:"speech_language"`
	SpeechRate      float64       `mapstructure:"speech_rate"`
	SpeakRateLimit  int           `mapstructure:"speak_rate_limit"`
	SpeakRateWindow time.Duration `mapstructure:"speak_rate_window"`

	TeacherPIN  string        `mapstructure:"teacher_pin"`
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`

	AWSRegion      string `mapstructure:"aws_region"`
	SESFromEmail   string `mapstructure:"ses_from_email"`
	SESFromName    string `mapstructure:"ses_from_name"`
	ReportEmail    string `mapstructure:"report_email"`
	ReportSchedule string `mapstructure:"report_schedule"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Debug     bool   `mapstructure:"debug"`
}

// Load reads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("port", "8080")
	v.SetDefault("app_base_url", "http://localhost:8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("trust_proxy", false)

	// Storage defaults
	v.SetDefault("database_type", "sqlite")
	v.SetDefault("db_path", "./funenglish.db")
	v.SetDefault("database_url", "")
	v.SetDefault("progress_key", "lg_english_progress_v1")

	// Speech defaults
	v.SetDefault("audio_dir", "./static/audio")
	v.SetDefault("speech_enabled", true)
	v.SetDefault("speech_language", "en")
	v.SetDefault("speech_rate", 0.9)
	v.SetDefault("speak_rate_limit", 30)
	v.SetDefault("speak_rate_window", time.Minute)

	// Teacher view defaults
	v.SetDefault("teacher_pin", "")
	v.SetDefault("token_secret", "")
	v.SetDefault("token_ttl", 12*time.Hour)

	// Report defaults
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("ses_from_email", "")
	v.SetDefault("ses_from_name", "Fun English")
	v.SetDefault("report_email", "")
	v.SetDefault("report_schedule", "")

	// Log defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("debug", false)
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch strings.ToLower(c.DatabaseType) {
	case "sqlite", "sqlite3", "":
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}

	if c.SpeechRate <= 0 || c.SpeechRate > 2 {
		return fmt.Errorf("SPEECH_RATE must be in (0, 2], got %v", c.SpeechRate)
	}
	if c.SpeakRateLimit < 0 {
		return fmt.Errorf("SPEAK_RATE_LIMIT must not be negative, got %d", c.SpeakRateLimit)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %v", c.TokenTTL)
	}
	if c.ReportSchedule != "" && c.ReportEmail == "" {
		return errors.New("REPORT_EMAIL is required when REPORT_SCHEDULE is set")
	}
	if c.ReportEmail != "" {
		if err := validation.ValidateEmail(c.ReportEmail); err != nil {
			return fmt.Errorf("REPORT_EMAIL: %w", err)
		}
	}
	if c.SESFromEmail != "" {
		if err := validation.ValidateEmail(c.SESFromEmail); err != nil {
			return fmt.Errorf("SES_FROM_EMAIL: %w", err)
		}
	}
	if c.TeacherPIN != "" {
		if err := validation.ValidatePIN(c.TeacherPIN); err != nil {
			return fmt.Errorf("TEACHER_PIN: %w", err)
		}
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// TeacherAuthEnabled reports whether the teacher routes require a PIN login
func (c *Config) TeacherAuthEnabled() bool {
	return c.TeacherPIN != ""
}

// EmailEnabled reports whether SES delivery is configured
func (c *Config) EmailEnabled() bool {
	return c.SESFromEmail != ""
}
