package config

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func validConfig() *Config {
	return &Config{
		OpenAIAPIKey:        "sk-test",
		LLMProvider:         "openai",
		Temperature:         0.3,
		MaxArticlesPerTopic: 50,
		ReportFormat:        "markdown",
		Iterations:          1,
	}
}

func TestValidateOK(t *testing.T) {
	assert.Equal(t, 0, len(validConfig().Validate()))
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAIAPIKey = ""

	errs := cfg.Validate()
	assert.Equal(t, 1, len(errs))
	if !strings.Contains(errs[0].Error(), "OPENAI_API_KEY") {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestValidateAnthropicProvider(t *testing.T) {
	cfg := validConfig()
	cfg.LLMProvider = "anthropic"

	errs := cfg.Validate()
	assert.Equal(t, 1, len(errs))

	cfg.AnthropicAPIKey = "sk-ant-test"
	assert.Equal(t, 0, len(cfg.Validate()))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		LLMProvider:         "carrier-pigeon",
		Temperature:         2.0,
		MaxArticlesPerTopic: 0,
		ReportFormat:        "pdf",
		Iterations:          0,
	}

	errs := cfg.Validate()
	assert.Equal(t, 5, len(errs))
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "markdown", cfg.ReportFormat)
	assert.Equal(t, 24*time.Hour, cfg.Interval)
	assert.NotEqual(t, 0, len(cfg.DefaultTopics))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("DEFAULT_TOPICS", "golang, distributed systems ,")
	t.Setenv("AUTONOMOUS_INTERVAL", "2h")

	cfg := Load()

	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, []string{"golang", "distributed systems"}, cfg.DefaultTopics)
	assert.Equal(t, 2*time.Hour, cfg.Interval)
}

func TestStringMasksKeys(t *testing.T) {
	cfg := validConfig()
	out := cfg.String()

	if strings.Contains(out, "sk-test") {
		t.Error("config string leaks the API key")
	}
	if !strings.Contains(out, "[SET]") {
		t.Error("config string should mark the key as set")
	}
}
