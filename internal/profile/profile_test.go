package profile

import (
	"os"
	"testing"
)

func clearLLMEnvVars() {
	for _, key := range []string{
		"GUPPSHUPP_LLM_PROVIDER",
		"GUPPSHUPP_LLM_API_KEY",
		"GUPPSHUPP_LLM_BASE_URL",
		"GUPPSHUPP_LLM_MODEL",
		"GUPPSHUPP_LLM_TIMEOUT_SECONDS",
		"GUPPSHUPP_LLM_MAX_RETRIES",
		"GUPPSHUPP_LLM_REQUESTS_PER_MINUTE",
	} {
		os.Unsetenv(key)
	}
}

// TestProfileDefaults verifies provider defaults are applied when env is empty.
func TestProfileDefaults(t *testing.T) {
	clearLLMEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"LLMProvider default", "groq", profile.LLMProvider},
		{"LLMBaseURL default", "https://api.groq.com/openai/v1", profile.LLMBaseURL},
		{"LLMModel default", "llama-3.3-70b-versatile", profile.LLMModel},
		{"LLMAPIKey default", "", profile.LLMAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.LLMTimeout != 30 {
		t.Errorf("LLMTimeout: expected 30, got %d", profile.LLMTimeout)
	}
	if profile.LLMRetries != 3 {
		t.Errorf("LLMRetries: expected 3, got %d", profile.LLMRetries)
	}
	if profile.LLMRPM != 30 {
		t.Errorf("LLMRPM: expected 30, got %d", profile.LLMRPM)
	}
	if profile.IsLLMEnabled() {
		t.Error("IsLLMEnabled should be false without an API key")
	}
}

// TestProfileFromEnv verifies environment variables override defaults.
func TestProfileFromEnv(t *testing.T) {
	clearLLMEnvVars()
	t.Setenv("GUPPSHUPP_LLM_PROVIDER", "deepseek")
	t.Setenv("GUPPSHUPP_LLM_API_KEY", "sk-test")
	t.Setenv("GUPPSHUPP_LLM_TIMEOUT_SECONDS", "60")

	profile := &Profile{}
	profile.FromEnv()

	if profile.LLMProvider != "deepseek" {
		t.Errorf("LLMProvider: expected deepseek, got %q", profile.LLMProvider)
	}
	if profile.LLMBaseURL != "https://api.deepseek.com" {
		t.Errorf("LLMBaseURL: expected deepseek default, got %q", profile.LLMBaseURL)
	}
	if profile.LLMModel != "deepseek-chat" {
		t.Errorf("LLMModel: expected deepseek-chat, got %q", profile.LLMModel)
	}
	if profile.LLMTimeout != 60 {
		t.Errorf("LLMTimeout: expected 60, got %d", profile.LLMTimeout)
	}
	if !profile.IsLLMEnabled() {
		t.Error("IsLLMEnabled should be true with an API key")
	}
}

// TestProfileUnknownProviderFallsBack verifies unknown providers fall back to groq.
func TestProfileUnknownProviderFallsBack(t *testing.T) {
	clearLLMEnvVars()
	t.Setenv("GUPPSHUPP_LLM_PROVIDER", "does-not-exist")

	profile := &Profile{}
	profile.FromEnv()

	if profile.LLMProvider != "groq" {
		t.Errorf("LLMProvider: expected fallback groq, got %q", profile.LLMProvider)
	}
}

// TestValidateSQLiteDSN verifies the sqlite DSN is derived from the data dir.
func TestValidateSQLiteDSN(t *testing.T) {
	dir := t.TempDir()
	profile := &Profile{Mode: "dev", Driver: "sqlite", Data: dir}

	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if profile.DSN == "" {
		t.Fatal("expected DSN to be derived for sqlite")
	}
}
