package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Inference InferenceConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Probe     ProbeConfig
	Seed      SeedConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// InferenceConfig describes the model-serving endpoint the symptom pipeline calls.
// It is read once at startup and never reloaded.
type InferenceConfig struct {
	Provider         string
	Token            string
	Workspace        string
	Endpoint         string
	BaseURL          string
	MaxTokens        int
	Temperature      float64
	Timeout          time.Duration
	ToolErrorMarkers []string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ProbeConfig struct {
	Interval time.Duration
}

// SeedConfig names provider data loaded at startup. Sample is a "lat,lng"
// point to generate sample providers around.
type SeedConfig struct {
	Dir    string
	Sample string
}

type SearchConfig struct {
	DefaultRadius float64 // meters
	MaxResults    int
}

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// InferenceStatus is the public view of the inference configuration.
type InferenceStatus struct {
	Configured bool   `json:"configured"`
	Provider   string `json:"provider"`
	Workspace  string `json:"workspace"`
	Endpoint   string `json:"endpoint"`
	HasToken   bool   `json:"hasToken"`
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "careconnect"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "3001"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL: getEnv("POSTGRES_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Inference: InferenceConfig{
			Provider:         strings.ToLower(getEnv("INFERENCE_PROVIDER", "serving")),
			Token:            getEnv("DATABRICKS_TOKEN", ""),
			Workspace:        getEnv("DATABRICKS_WORKSPACE", ""),
			Endpoint:         getEnv("DATABRICKS_AGENT_ENDPOINT", ""),
			BaseURL:          getEnv("INFERENCE_BASE_URL", ""),
			MaxTokens:        getEnvAsInt("INFERENCE_MAX_TOKENS", 1000),
			Temperature:      getEnvAsFloat("INFERENCE_TEMPERATURE", 0.3),
			Timeout:          getEnvAsDuration("INFERENCE_TIMEOUT", 0),
			ToolErrorMarkers: getEnvAsList("INFERENCE_TOOL_ERROR_MARKERS", []string{"get_weather"}),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("LLM_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Probe: ProbeConfig{
			Interval: getEnvAsDuration("PROBE_INTERVAL", 5*time.Minute),
		},
		Seed: SeedConfig{
			Dir:    getEnv("SEED_DIR", ""),
			Sample: getEnv("SEED_SAMPLE", ""),
		},
		Search: SearchConfig{
			DefaultRadius: getEnvAsFloat("SEARCH_DEFAULT_RADIUS", 5000),
			MaxResults:    getEnvAsInt("SEARCH_MAX_RESULTS", 25),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}

	switch cfg.Inference.Provider {
	case "serving", "openai", "gemini":
	default:
		return nil, fmt.Errorf("unsupported INFERENCE_PROVIDER %q", cfg.Inference.Provider)
	}

	if cfg.Inference.MaxTokens <= 0 {
		return nil, fmt.Errorf("INFERENCE_MAX_TOKENS must be positive")
	}

	return cfg, nil
}

// URL returns the invocation URL of the serving endpoint. An explicit base URL
// wins over the workspace/endpoint pair.
func (c InferenceConfig) URL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Workspace == "" || c.Endpoint == "" {
		return ""
	}
	host := strings.TrimSuffix(c.Workspace, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return fmt.Sprintf("%s/serving-endpoints/%s/invocations", host, c.Endpoint)
}

// Status reports whether the serving endpoint has everything it needs.
func (c InferenceConfig) Status() InferenceStatus {
	return InferenceStatus{
		Configured: c.Token != "" && c.Workspace != "" && c.Endpoint != "",
		Provider:   c.Provider,
		Workspace:  c.Workspace,
		Endpoint:   c.Endpoint,
		HasToken:   c.Token != "",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
