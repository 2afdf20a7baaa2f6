// Package config handles application configuration using Viper.
// Defaults, an optional YAML file, and BRIEF_-prefixed environment variables
// are merged in priority order and unmarshaled into structs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration struct. `mapstructure` tags map YAML/env
// keys to struct fields.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Search SearchConfig `mapstructure:"search"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Reveal RevealConfig `mapstructure:"reveal"`
	UI     UIConfig     `mapstructure:"ui"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SearchConfig configures the search provider. Keys are deliberately not
// validated at load time: missing credentials go out as empty parameters and
// fail at the provider, surfacing as a normal search error.
type SearchConfig struct {
	APIKey       string `mapstructure:"api_key"`
	EngineID     string `mapstructure:"engine_id"`
	BaseURL      string `mapstructure:"base_url"`
	SnippetCount int    `mapstructure:"snippet_count"`
	ImageCount   int    `mapstructure:"image_count"`
}

type LLMConfig struct {
	// Provider selects the completion backend: "openai" (any OpenAI-compatible
	// endpoint, Groq by default) or "anthropic".
	Provider    string          `mapstructure:"provider"`
	Temperature float64         `mapstructure:"temperature"`
	MaxTokens   int             `mapstructure:"max_tokens"`
	OpenAI      OpenAIConfig    `mapstructure:"openai"`
	Anthropic   AnthropicConfig `mapstructure:"anthropic"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type RevealConfig struct {
	// SpeedMs is the per-character delay of the typing animation.
	SpeedMs int `mapstructure:"speed_ms"`
}

type UIConfig struct {
	// Suggestions are the clickable example queries on the page.
	Suggestions []string `mapstructure:"suggestions"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("search.snippet_count", 15)
	v.SetDefault("search.image_count", 4)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 3000)
	v.SetDefault("llm.openai.model", "mixtral-8x7b-32768")
	v.SetDefault("llm.openai.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("reveal.speed_ms", 5)
	v.SetDefault("ui.suggestions", []string{
		"What are the latest advances in renewable energy?",
		"How does quantum computing work?",
		"What caused the fall of the Roman Empire?",
		"Why is the sky blue?",
	})
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// A missing config file is fine — defaults + env cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Environment variables override everything:
	// BRIEF_SEARCH_API_KEY → search.api_key, BRIEF_SERVER_PORT → server.port.
	v.SetEnvPrefix("BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Address returns the listen address string like "0.0.0.0:8080".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
