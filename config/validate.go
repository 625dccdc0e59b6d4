package config

import (
	"fmt"
)

// Default option lists offered when config.yaml does not override them.
var (
	DefaultMatters = []string{
		"Client A - Project Alpha",
		"Client B - Project Beta",
		"Client C - Project Gamma",
		"Internal - Marketing",
		"Internal - Operations",
	}
	DefaultCostCentres = []string{
		"Development",
		"Marketing",
		"Sales",
		"Operations",
		"Administration",
	}
	DefaultBusinessAreas = []string{
		"Software Development",
		"Client Relations",
		"Business Development",
		"Training & Education",
		"Administrative Tasks",
	}
	DefaultSubcategories = []string{
		"Meetings",
		"Documentation",
		"Research",
		"Planning",
		"Training",
		"Email Management",
	}
)

// Validate rejects impossible values. An attempt timeout above
// MaxAttemptTimeout is clamped rather than rejected.
func (c *Config) Validate() error {
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port %d is out of range", c.HTTPServer.Port)
	}

	d := &c.Delivery
	if d.RetryAttempts < 1 {
		return fmt.Errorf("delivery.retry_attempts must be at least 1, got %d", d.RetryAttempts)
	}
	if d.InitialDelay < 0 || d.MaxDelay < 0 {
		return fmt.Errorf("delivery delays must not be negative")
	}
	if d.AttemptTimeout <= 0 {
		return fmt.Errorf("delivery.attempt_timeout must be positive")
	}
	if d.AttemptTimeout > MaxAttemptTimeout {
		fmt.Printf("Warning: delivery.attempt_timeout %s exceeds %s, clamping\n", d.AttemptTimeout, MaxAttemptTimeout)
		d.AttemptTimeout = MaxAttemptTimeout
	}
	if d.Enabled && d.URL == "" {
		fmt.Printf("Warning: delivery is enabled but delivery.url is empty\n")
	}

	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendSQLite, SessionBackendMemory:
	default:
		return fmt.Errorf("session.backend %q is not one of file, sqlite, memory", c.Session.Backend)
	}
	if c.Session.CacheSize < 0 {
		return fmt.Errorf("session.cache_size must not be negative")
	}

	if c.RateLimit.PerMin < 0 {
		return fmt.Errorf("rate_limit.per_min must not be negative")
	}

	return validateLLMConfig(&c.LLM)
}

// validateLLMConfig validates the LLM configuration. No providers is allowed:
// open-ended chat is then unavailable.
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true

		if provider.APIKey == "" {
			fmt.Printf("Warning: provider %s has no API key configured\n", provider.Name)
		}
	}

	return nil
}

// HasLLM reports whether at least one provider is enabled.
func (c *Config) HasLLM() bool {
	for _, p := range c.LLM.Providers {
		if p.Enabled {
			return true
		}
	}
	return false
}

// DeliveryURL is the webhook URL when delivery is enabled, or empty.
func (c *Config) DeliveryURL() string {
	if !c.Delivery.Enabled {
		return ""
	}
	return c.Delivery.URL
}
