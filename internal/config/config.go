package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. WIKIQUIZ_BACKEND_URL.
const EnvPrefix = "WIKIQUIZ"

// Config holds all runtime configuration.
type Config struct {
	Backend BackendConfig
	DB      DBConfig
	Log     LoggerConfig
	Server  ServerConfig
	LLM     LLMConfig
}

// BackendConfig configures the client side of the REST contract.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// DBConfig points at the local SQLite file.
type DBConfig struct {
	Path string
}

// LoggerConfig selects level, encoding and sink.
type LoggerConfig struct {
	Level string // "debug" or "info"
	Env   string // "production" selects JSON output
	File  string // empty means stdout
}

// ServerConfig configures `wikiquiz serve`.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig selects and configures the quiz generation provider.
type LLMConfig struct {
	Provider string
	Timeout  time.Duration

	Anthropic ProviderConfig
	OpenAI    ProviderConfig
	Gemini    ProviderConfig
	Groq      ProviderConfig

	Retry RetryConfig
}

// ProviderConfig holds the credentials and model of one provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient provider errors.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 60*time.Second)

	v.SetDefault("db.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.env", "development")
	v.SetDefault("log.file", "")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 120*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("llm.anthropic.model", "claude-haiku")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.gemini.model", "gemini-flash")
	v.SetDefault("llm.groq.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.retry.max_attempts", 3)
	v.SetDefault("llm.retry.initial_wait", time.Second)
	v.SetDefault("llm.retry.max_wait", 10*time.Second)
	v.SetDefault("llm.retry.multiplier", 2.0)
}

// New returns a viper instance with defaults, env binding and, when found,
// the config file loaded. An explicit path must exist; the default search
// locations are optional.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys also come from the conventional variables.
	_ = v.BindEnv("llm.anthropic.api_key", EnvPrefix+"_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", EnvPrefix+"_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini.api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.groq.api_key", EnvPrefix+"_LLM_GROQ_API_KEY", "GROQ_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			URL:     strings.TrimRight(strings.TrimSpace(v.GetString("backend.url")), "/"),
			Timeout: v.GetDuration("backend.timeout"),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		Log: LoggerConfig{
			Level: v.GetString("log.level"),
			Env:   v.GetString("log.env"),
			File:  v.GetString("log.file"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		LLM: LLMConfig{
			Provider:  v.GetString("llm.provider"),
			Timeout:   v.GetDuration("llm.timeout"),
			Anthropic: providerConfig(v, "anthropic"),
			OpenAI:    providerConfig(v, "openai"),
			Gemini:    providerConfig(v, "gemini"),
			Groq:      providerConfig(v, "groq"),
			Retry: RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
		},
	}

	if cfg.Backend.URL == "" {
		return nil, errors.New("backend.url must not be empty")
	}
	if cfg.Backend.Timeout <= 0 {
		return nil, fmt.Errorf("backend.timeout must be positive, got %s", cfg.Backend.Timeout)
	}
	return cfg, nil
}

func providerConfig(v *viper.Viper, name string) ProviderConfig {
	return ProviderConfig{
		APIKey:  v.GetString("llm." + name + ".api_key"),
		Model:   v.GetString("llm." + name + ".model"),
		BaseURL: v.GetString("llm." + name + ".base_url"),
	}
}

// configDir returns $XDG_CONFIG_HOME/wikiquiz (or ~/.config/wikiquiz).
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wikiquiz"), nil
}
