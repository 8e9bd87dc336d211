package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	NewsAPIKey      string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	LLMProvider    string
	OpenAIModel    string
	AnthropicModel string
	Temperature    float64

	DefaultLanguage     string
	DefaultCountry      string
	MaxArticlesPerTopic int
	DefaultTopics       []string

	ReportFormat string
	OutputDir    string

	Interval   time.Duration
	Iterations int

	TelegramToken string
	ServerAddr    string

	CacheRetention time.Duration
	LogLevel       string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		NewsAPIKey:          getEnv("NEWSAPI_KEY", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicModel:      getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5"),
		Temperature:         getEnvAsFloat("LLM_TEMPERATURE", 0.3),
		DefaultLanguage:     getEnv("DEFAULT_LANGUAGE", "en"),
		DefaultCountry:      getEnv("DEFAULT_COUNTRY", "us"),
		MaxArticlesPerTopic: getEnvAsInt("MAX_ARTICLES_PER_TOPIC", 50),
		DefaultTopics:       getEnvAsList("DEFAULT_TOPICS", "technology,AI,machine learning"),
		ReportFormat:        getEnv("REPORT_FORMAT", "markdown"),
		OutputDir:           getEnv("OUTPUT_DIRECTORY", "reports"),
		Interval:            getEnvAsDuration("AUTONOMOUS_INTERVAL", 24*time.Hour),
		Iterations:          getEnvAsInt("AUTONOMOUS_ITERATIONS", 1),
		TelegramToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		ServerAddr:          getEnv("SERVER_ADDR", ":8080"),
		CacheRetention:      getEnvAsDuration("CACHE_RETENTION", 24*time.Hour),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// Validate collects every configuration problem instead of stopping at the
// first, so a misconfigured deployment is fixable in one pass.
func (c *Config) Validate() []error {
	var errs []error

	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, fmt.Errorf("OPENAI_API_KEY is not set"))
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			errs = append(errs, fmt.Errorf("ANTHROPIC_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be 'openai' or 'anthropic', got %q", c.LLMProvider))
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 1"))
	}

	if c.MaxArticlesPerTopic < 1 {
		errs = append(errs, fmt.Errorf("MAX_ARTICLES_PER_TOPIC must be at least 1"))
	}

	switch c.ReportFormat {
	case "text", "markdown", "html":
	default:
		errs = append(errs, fmt.Errorf("REPORT_FORMAT must be 'text', 'markdown', or 'html', got %q", c.ReportFormat))
	}

	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("AUTONOMOUS_ITERATIONS must be at least 1"))
	}

	return errs
}

func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("News Agent Configuration:\n")
	fmt.Fprintf(&sb, "  LLM Provider: %s\n", c.LLMProvider)
	fmt.Fprintf(&sb, "  OpenAI Model: %s\n", c.OpenAIModel)
	fmt.Fprintf(&sb, "  Anthropic Model: %s\n", c.AnthropicModel)
	fmt.Fprintf(&sb, "  Temperature: %.2f\n", c.Temperature)
	fmt.Fprintf(&sb, "  OpenAI API Key: %s\n", maskKey(c.OpenAIAPIKey))
	fmt.Fprintf(&sb, "  Anthropic API Key: %s\n", maskKey(c.AnthropicAPIKey))
	fmt.Fprintf(&sb, "  NewsAPI Key: %s\n", maskKey(c.NewsAPIKey))
	fmt.Fprintf(&sb, "  Default Country: %s\n", c.DefaultCountry)
	fmt.Fprintf(&sb, "  Default Topics: %s\n", strings.Join(c.DefaultTopics, ", "))
	fmt.Fprintf(&sb, "  Max Articles Per Topic: %d\n", c.MaxArticlesPerTopic)
	fmt.Fprintf(&sb, "  Report Format: %s\n", c.ReportFormat)
	fmt.Fprintf(&sb, "  Output Directory: %s\n", c.OutputDir)
	fmt.Fprintf(&sb, "  Autonomous Interval: %s\n", c.Interval)
	fmt.Fprintf(&sb, "  Telegram Delivery: %s\n", map[bool]string{true: "enabled", false: "disabled"}[c.TelegramToken != ""])
	return sb.String()
}

func maskKey(key string) string {
	if key == "" {
		return "[NOT SET]"
	}
	return "[SET]"
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

func getEnvAsList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
