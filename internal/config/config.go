package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Limits LimitsConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LimitsConfig holds the policy constants bounding upload acceptance and
// extraction resource use.
type LimitsConfig struct {
	MaxFileSizeMB     int64 `mapstructure:"max_file_size_mb"`
	MinFileSizeBytes  int64 `mapstructure:"min_file_size_bytes"`
	MaxSlides         int   `mapstructure:"max_slides"`
	MaxShapesPerSlide int   `mapstructure:"max_shapes_per_slide"`
	MaxTextPerSlide   int   `mapstructure:"max_text_per_slide"`
}

// MaxFileSizeBytes returns the upload size ceiling in bytes.
func (l *LimitsConfig) MaxFileSizeBytes() int64 {
	return l.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SLIDETEXT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SLIDETEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Limit defaults match the published acceptance policy: 50MB ceiling,
	// 1000-byte floor, 200 slides, 100 shapes per slide, 50k chars per slide.
	v.SetDefault("limits.max_file_size_mb", 50)
	v.SetDefault("limits.min_file_size_bytes", 1000)
	v.SetDefault("limits.max_slides", 200)
	v.SetDefault("limits.max_shapes_per_slide", 100)
	v.SetDefault("limits.max_text_per_slide", 50000)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "SLIDETEXT_SERVER_PORT",
		"server.read_timeout":         "SLIDETEXT_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "SLIDETEXT_SERVER_WRITE_TIMEOUT",
		"server.environment":          "SLIDETEXT_SERVER_ENVIRONMENT",
		"limits.max_file_size_mb":     "SLIDETEXT_LIMITS_MAX_FILE_SIZE_MB",
		"limits.min_file_size_bytes":  "SLIDETEXT_LIMITS_MIN_FILE_SIZE_BYTES",
		"limits.max_slides":           "SLIDETEXT_LIMITS_MAX_SLIDES",
		"limits.max_shapes_per_slide": "SLIDETEXT_LIMITS_MAX_SHAPES_PER_SLIDE",
		"limits.max_text_per_slide":   "SLIDETEXT_LIMITS_MAX_TEXT_PER_SLIDE",
		"log.level":                   "SLIDETEXT_LOG_LEVEL",
		"log.format":                  "SLIDETEXT_LOG_FORMAT",
		"cors.allowed_origins":        "SLIDETEXT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SLIDETEXT_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SLIDETEXT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Limits = LimitsConfig{
		MaxFileSizeMB:     v.GetInt64("limits.max_file_size_mb"),
		MinFileSizeBytes:  v.GetInt64("limits.min_file_size_bytes"),
		MaxSlides:         v.GetInt("limits.max_slides"),
		MaxShapesPerSlide: v.GetInt("limits.max_shapes_per_slide"),
		MaxTextPerSlide:   v.GetInt("limits.max_text_per_slide"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
