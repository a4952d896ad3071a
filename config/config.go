package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the breakdown service
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Research ResearchConfig `mapstructure:"research"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// ResearchConfig contains web search and page fetch settings
type ResearchConfig struct {
	SerperAPIKey     string        `mapstructure:"serper_api_key"`
	SerperBaseURL    string        `mapstructure:"serper_base_url"`
	WikipediaBaseURL string        `mapstructure:"wikipedia_base_url"`
	ResultsPerQuery  int           `mapstructure:"results_per_query"`
	MaxSources       int           `mapstructure:"max_sources"`
	SearchTimeout    time.Duration `mapstructure:"search_timeout"`
	Fetcher          string        `mapstructure:"fetcher"` // http, chromedp
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	MaxPageChars     int           `mapstructure:"max_page_chars"`
}

// LLMConfig contains completion backend configurations. OpenAI is preferred
// whenever its key is set; Anthropic is used otherwise.
type LLMConfig struct {
	OpenAI    LLMProvider `mapstructure:"openai"`
	Anthropic LLMProvider `mapstructure:"anthropic"`
}

// LLMProvider represents a single completion backend configuration
type LLMProvider struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (r ResearchConfig) Validate() error {
	if r.MaxSources <= 0 {
		return fmt.Errorf("research.max_sources must be > 0")
	}
	if r.ResultsPerQuery <= 0 {
		return fmt.Errorf("research.results_per_query must be > 0")
	}
	switch r.Fetcher {
	case "http", "chromedp":
	default:
		return fmt.Errorf("research.fetcher must be http or chromedp, got %q", r.Fetcher)
	}
	return nil
}

// LoadConfig loads config from an optional file plus BREAKDOWN_* environment
// variables. Credentials also bind to their conventional plain names
// (SERPER_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY) so the service can run
// with nothing but env configured.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("server.listen", ":10002")
	viper.SetDefault("research.serper_api_key", "")
	viper.SetDefault("research.serper_base_url", "https://google.serper.dev")
	viper.SetDefault("research.wikipedia_base_url", "https://en.wikipedia.org")
	viper.SetDefault("research.results_per_query", 3)
	viper.SetDefault("research.max_sources", 8)
	viper.SetDefault("research.search_timeout", 15*time.Second)
	viper.SetDefault("research.fetcher", "http")
	viper.SetDefault("research.fetch_timeout", 15*time.Second)
	viper.SetDefault("research.max_page_chars", 10000)
	viper.SetDefault("llm.openai.api_key", "")
	viper.SetDefault("llm.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.openai.model", "gpt-4o-mini")
	viper.SetDefault("llm.openai.temperature", 0.2)
	viper.SetDefault("llm.openai.max_tokens", 2000)
	viper.SetDefault("llm.openai.timeout", 60*time.Second)
	viper.SetDefault("llm.anthropic.api_key", "")
	viper.SetDefault("llm.anthropic.base_url", "https://api.anthropic.com")
	viper.SetDefault("llm.anthropic.model", "claude-3-5-haiku-latest")
	viper.SetDefault("llm.anthropic.temperature", 0.2)
	viper.SetDefault("llm.anthropic.max_tokens", 2000)
	viper.SetDefault("llm.anthropic.timeout", 60*time.Second)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("BREAKDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindEnv("research.serper_api_key", "BREAKDOWN_RESEARCH_SERPER_API_KEY", "SERPER_API_KEY")
	_ = viper.BindEnv("llm.openai.api_key", "BREAKDOWN_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("llm.anthropic.api_key", "BREAKDOWN_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; only an explicitly named one must exist.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := config.Research.Validate(); err != nil {
		panic(err)
	}
	return &config
}
