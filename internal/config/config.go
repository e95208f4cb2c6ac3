package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported model providers
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config holds all application configuration
type Config struct {
	AI      AI      `mapstructure:"ai"`
	Planner Planner `mapstructure:"planner"`
	Server  Server  `mapstructure:"server"`
	Metrics Metrics `mapstructure:"metrics"`
	Logging Logging `mapstructure:"logging"`

	// ConfigFile is the file viper actually read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// AI holds language-model configuration
type AI struct {
	Enabled  bool         `mapstructure:"enabled"`
	Provider string       `mapstructure:"provider"`
	Timeout  string       `mapstructure:"timeout"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

// OpenAIConfig holds OpenAI-specific configuration
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// OllamaConfig holds configuration for a local Ollama server
type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// GeminiConfig holds Gemini-specific configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Planner holds generation pipeline settings
type Planner struct {
	Parallel bool `mapstructure:"parallel"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string    `mapstructure:"host"`
	Port            int       `mapstructure:"port"`
	ReadTimeout     string    `mapstructure:"read_timeout"`
	WriteTimeout    string    `mapstructure:"write_timeout"`
	ShutdownTimeout string    `mapstructure:"shutdown_timeout"`
	TemplateDir     string    `mapstructure:"template_dir"`
	DevMode         bool      `mapstructure:"dev_mode"`
	CORS            CORS      `mapstructure:"cors"`
	RateLimit       RateLimit `mapstructure:"rate_limit"`
}

// CORS holds cross-origin settings for the HTTP server
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimit caps concurrent in-flight requests
type RateLimit struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxConcurrent int  `mapstructure:"max_concurrent"`
}

// Metrics holds Prometheus exposition settings
type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads the configuration from .env, an optional config file and the environment.
// Each call builds a fresh viper instance so results never leak between callers.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".neighborly")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment wins over the config file
	bindEnvironmentVariables(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.ConfigFile = v.ConfigFileUsed()

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", ProviderOpenAI)
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.ollama.base_url", "http://localhost:11434")
	v.SetDefault("ai.ollama.model", "llama3.2")
	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")

	v.SetDefault("planner.parallel", true)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.template_dir", "web/templates")
	v.SetDefault("server.dev_mode", false)
	v.SetDefault("server.cors.enabled", false)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit.enabled", false)
	v.SetDefault("server.rate_limit.max_concurrent", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables(v *viper.Viper) {
	// Service toggle accepts the legacy USE_OPENAI switch
	bindEnvToggle(v, "ai.enabled", []string{
		"USE_OPENAI",
		"NEIGHBORLY_AI_ENABLED",
	})

	bindEnvKeys(v, "ai.provider", []string{"AI_PROVIDER"})
	bindEnvKeys(v, "ai.timeout", []string{"AI_TIMEOUT"})

	bindEnvKeys(v, "ai.openai.api_key", []string{"OPENAI_API_KEY"})
	bindEnvKeys(v, "ai.openai.model", []string{"OPENAI_MODEL"})
	bindEnvKeys(v, "ai.openai.base_url", []string{"OPENAI_BASE_URL"})

	bindEnvKeys(v, "ai.ollama.base_url", []string{"OLLAMA_HOST"})
	bindEnvKeys(v, "ai.ollama.model", []string{"OLLAMA_MODEL"})

	// Gemini API key - support multiple formats
	bindEnvKeys(v, "ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
	bindEnvKeys(v, "ai.gemini.model", []string{"GEMINI_MODEL"})

	bindEnvKeys(v, "server.host", []string{"HOST"})
	bindEnvKeys(v, "server.port", []string{"PORT"})

	bindEnvKeys(v, "logging.level", []string{"LOG_LEVEL"})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(v *viper.Viper, viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			v.Set(viperKey, value)
			return
		}
	}
}

// bindEnvToggle binds the first non-empty environment variable as a boolean switch.
func bindEnvToggle(v *viper.Viper, viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			v.Set(viperKey, ParseToggle(value))
			return
		}
	}
}

// ParseToggle reports whether value turns a switch on: "1", "true" or "yes",
// case-insensitive. Anything else is off.
func ParseToggle(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	config.AI.OpenAI.APIKey = strings.TrimSpace(config.AI.OpenAI.APIKey)
	config.AI.Gemini.APIKey = strings.TrimSpace(config.AI.Gemini.APIKey)

	// Validate durations
	durations := map[string]string{
		"ai.timeout":              config.AI.Timeout,
		"server.read_timeout":     config.Server.ReadTimeout,
		"server.write_timeout":    config.Server.WriteTimeout,
		"server.shutdown_timeout": config.Server.ShutdownTimeout,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// validateConfig ensures the configuration is usable.
// A missing API key is not an error: generation simply falls back.
func validateConfig(config *Config) error {
	var errors []string

	switch config.AI.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderGemini:
	default:
		errors = append(errors, fmt.Sprintf("Unknown AI provider: %s. Supported: openai, ollama, gemini", config.AI.Provider))
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("Invalid server port: %d", config.Server.Port))
	}

	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("Unknown logging format: %s. Supported: text, json", config.Logging.Format))
	}

	if config.Server.RateLimit.Enabled && config.Server.RateLimit.MaxConcurrent <= 0 {
		errors = append(errors, "server.rate_limit.max_concurrent must be positive when rate limiting is enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// RequestTimeout returns the per-call model timeout.
func (a AI) RequestTimeout() time.Duration {
	return parseDuration(a.Timeout, 30*time.Second)
}

// Configured reports whether the selected provider has what it needs to make a call.
func (a AI) Configured() bool {
	if !a.Enabled {
		return false
	}
	switch a.Provider {
	case ProviderOpenAI:
		return a.OpenAI.APIKey != ""
	case ProviderGemini:
		return a.Gemini.APIKey != ""
	case ProviderOllama:
		return a.Ollama.BaseURL != ""
	}
	return false
}

// Address returns host:port for the HTTP listener.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s Server) ReadTimeoutDuration() time.Duration {
	return parseDuration(s.ReadTimeout, 15*time.Second)
}

func (s Server) WriteTimeoutDuration() time.Duration {
	return parseDuration(s.WriteTimeout, 120*time.Second)
}

func (s Server) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(s.ShutdownTimeout, 10*time.Second)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
