package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Form          FormConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// FormConfig configures the client-side form controller.
type FormConfig struct {
	SubmitEndpoint string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("SUBMIT_ENDPOINT", "http://localhost:8080/api/submit")
	v.SetDefault("O11Y_SERVICE_NAME", "testpick-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "testpick")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // .env file is optional

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	for _, origin := range strings.Split(v.GetString("ALLOWED_CORS_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		Form: FormConfig{
			SubmitEndpoint: v.GetString("SUBMIT_ENDPOINT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadForm reads only the configuration the terminal form client needs. The
// client talks to a remote API, so none of the server-side keys are required.
func LoadForm() FormConfig {
	v := viper.New()
	v.SetDefault("SUBMIT_ENDPOINT", "http://localhost:8080/api/submit")
	v.AutomaticEnv()

	return FormConfig{
		SubmitEndpoint: v.GetString("SUBMIT_ENDPOINT"),
	}
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}
	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
