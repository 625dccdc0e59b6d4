package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxAttemptTimeout caps a single delivery attempt.
const MaxAttemptTimeout = 10 * time.Second

// Session storage backends.
const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
	SessionBackendMemory = "memory"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Timesheet specifics
	Delivery DeliveryConfig
	Calendar CalendarConfig
	Options  OptionsConfig
	Session  SessionConfig
	Telegram TelegramConfig

	RateLimit RateLimitConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DeliveryConfig describes the primary webhook destination and its retry policy.
type DeliveryConfig struct {
	URL            string
	APIKey         string
	Enabled        bool
	RetryAttempts  int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration
}

// CalendarConfig enables the optional calendar mirror when CalendarID is set.
type CalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	Timezone        string
}

// OptionsConfig holds the lists offered in classification prompts.
type OptionsConfig struct {
	Matters       []string
	CostCentres   []string
	BusinessAreas []string
	Subcategories []string
}

type SessionConfig struct {
	Backend    string
	Dir        string
	SQLitePath string
	CacheSize  int
	CacheTTL   time.Duration
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	SecretToken string
	// NgrokAPI is the local ngrok API used to discover a public URL when
	// WebhookURL is empty, e.g. http://ngrok:4040.
	NgrokAPI string
}

type RateLimitConfig struct {
	PerMin int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/timesheet/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/timesheet/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Delivery
	cfg.Delivery.URL = viper.GetString("delivery.url")
	cfg.Delivery.APIKey = expandEnvVar(viper.GetString("delivery.api_key"))
	cfg.Delivery.Enabled = viper.GetBool("delivery.enabled")
	cfg.Delivery.RetryAttempts = viper.GetInt("delivery.retry_attempts")
	cfg.Delivery.InitialDelay = viper.GetDuration("delivery.initial_delay")
	cfg.Delivery.MaxDelay = viper.GetDuration("delivery.max_delay")
	cfg.Delivery.AttemptTimeout = viper.GetDuration("delivery.attempt_timeout")
	if url := viper.GetString("delivery_url"); url != "" {
		cfg.Delivery.URL = url
	}
	if apiKey := viper.GetString("delivery_api_key"); apiKey != "" {
		cfg.Delivery.APIKey = apiKey
	}

	cfg.Calendar.CredentialsPath = viper.GetString("calendar.credentials_path")
	cfg.Calendar.TokenPath = viper.GetString("calendar.token_path")
	cfg.Calendar.CalendarID = viper.GetString("calendar.calendar_id")
	cfg.Calendar.Timezone = viper.GetString("calendar.timezone")
	if creds := viper.GetString("google_calendar_credentials"); creds != "" {
		cfg.Calendar.CredentialsPath = creds
	}

	cfg.Options.Matters = getStringList("options.matters")
	cfg.Options.CostCentres = getStringList("options.cost_centres")
	cfg.Options.BusinessAreas = getStringList("options.business_areas")
	cfg.Options.Subcategories = getStringList("options.subcategories")

	cfg.Session.Backend = strings.ToLower(viper.GetString("session.backend"))
	cfg.Session.Dir = viper.GetString("session.dir")
	cfg.Session.SQLitePath = viper.GetString("session.sqlite_path")
	cfg.Session.CacheSize = viper.GetInt("session.cache_size")
	cfg.Session.CacheTTL = viper.GetDuration("session.cache_ttl")

	cfg.Telegram.BotToken = expandEnvVar(viper.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = viper.GetString("telegram.secret_token")
	cfg.Telegram.NgrokAPI = viper.GetString("telegram.ngrok_api")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		if providersList, ok := viper.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}
	// A single OpenAI provider can be configured from the environment alone.
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("openai_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "openai",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    viper.GetString("openai_model"),
				Timeout:  "30s",
			})
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("delivery.enabled", false)
	viper.SetDefault("delivery.retry_attempts", 3)
	viper.SetDefault("delivery.initial_delay", "500ms")
	viper.SetDefault("delivery.max_delay", "8s")
	viper.SetDefault("delivery.attempt_timeout", "10s")

	viper.SetDefault("calendar.timezone", "UTC")
	viper.SetDefault("calendar.token_path", "token.json")

	viper.SetDefault("options.matters", DefaultMatters)
	viper.SetDefault("options.cost_centres", DefaultCostCentres)
	viper.SetDefault("options.business_areas", DefaultBusinessAreas)
	viper.SetDefault("options.subcategories", DefaultSubcategories)

	viper.SetDefault("session.backend", SessionBackendFile)
	viper.SetDefault("session.dir", "./data/sessions")
	viper.SetDefault("session.sqlite_path", "./data/sessions.db")
	viper.SetDefault("session.cache_size", 1024)
	viper.SetDefault("session.cache_ttl", "30m")

	viper.SetDefault("rate_limit.per_min", 60)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
	viper.SetDefault("openai_model", "gpt-4o-mini")
}

// getStringList accepts either a YAML list or a comma separated env value.
func getStringList(key string) []string {
	raw := viper.GetStringSlice(key)
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		raw = strings.Split(raw[0], ",")
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
