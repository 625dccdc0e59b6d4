package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		HTTPServer: HTTPServerConfig{Port: 8080},
		Delivery: DeliveryConfig{
			RetryAttempts:  3,
			InitialDelay:   500 * time.Millisecond,
			MaxDelay:       8 * time.Second,
			AttemptTimeout: 10 * time.Second,
		},
		Session: SessionConfig{Backend: SessionBackendFile},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero attempts", mutate: func(c *Config) { c.Delivery.RetryAttempts = 0 }, wantErr: "retry_attempts"},
		{name: "negative delay", mutate: func(c *Config) { c.Delivery.InitialDelay = -time.Second }, wantErr: "negative"},
		{name: "zero timeout", mutate: func(c *Config) { c.Delivery.AttemptTimeout = 0 }, wantErr: "attempt_timeout"},
		{name: "bad backend", mutate: func(c *Config) { c.Session.Backend = "redis" }, wantErr: "session.backend"},
		{name: "bad port", mutate: func(c *Config) { c.HTTPServer.Port = 0 }, wantErr: "port"},
		{
			name: "provider without model",
			mutate: func(c *Config) {
				c.LLM.Providers = []ProviderConfig{{Name: "openai", Enabled: true, Priority: 1}}
			},
			wantErr: "model is required",
		},
		{
			name: "duplicate priority",
			mutate: func(c *Config) {
				c.LLM.Providers = []ProviderConfig{
					{Name: "a", Model: "m", Enabled: true, Priority: 1, APIKey: "k"},
					{Name: "b", Model: "m", Enabled: true, Priority: 1, APIKey: "k"},
				}
			},
			wantErr: "duplicate priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateClampsAttemptTimeout(t *testing.T) {
	c := validConfig()
	c.Delivery.AttemptTimeout = time.Minute
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c.Delivery.AttemptTimeout != MaxAttemptTimeout {
		t.Errorf("AttemptTimeout = %s, want %s", c.Delivery.AttemptTimeout, MaxAttemptTimeout)
	}
}

func TestHasLLM(t *testing.T) {
	c := validConfig()
	if c.HasLLM() {
		t.Error("HasLLM() = true with no providers")
	}
	c.LLM.Providers = []ProviderConfig{{Name: "openai", Enabled: false}}
	if c.HasLLM() {
		t.Error("HasLLM() = true with only disabled providers")
	}
	c.LLM.Providers[0].Enabled = true
	if !c.HasLLM() {
		t.Error("HasLLM() = false with an enabled provider")
	}
}

func TestDeliveryURL(t *testing.T) {
	c := validConfig()
	c.Delivery.URL = "https://hooks.example.com/time"
	if got := c.DeliveryURL(); got != "" {
		t.Errorf("DeliveryURL() = %q while disabled", got)
	}
	c.Delivery.Enabled = true
	if got := c.DeliveryURL(); got != c.Delivery.URL {
		t.Errorf("DeliveryURL() = %q", got)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TIMESHEET_TEST_KEY", "secret")
	if got := expandEnvVar("${TIMESHEET_TEST_KEY}"); got != "secret" {
		t.Errorf("expandEnvVar() = %q", got)
	}
	if got := expandEnvVar("plain"); got != "plain" {
		t.Errorf("expandEnvVar() = %q", got)
	}
}

func TestGetIntFromMap(t *testing.T) {
	m := map[string]interface{}{"a": 2, "b": float64(3), "c": "x"}
	if getIntFromMap(m, "a") != 2 || getIntFromMap(m, "b") != 3 || getIntFromMap(m, "c") != 0 {
		t.Error("getIntFromMap mismatch")
	}
}
