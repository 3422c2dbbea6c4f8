package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/gitinsight/assistant"
	"github.com/viant/gitinsight/repository"
	"github.com/viant/gitinsight/tree"
	"gopkg.in/yaml.v3"
)

// Environment variables
const (
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvGitHubAPIURL  = "GITHUB_API_URL"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvPort          = "PORT"
)

// Config represents application configuration
type Config struct {
	Port        int      `yaml:"port"`
	StaticDir   string   `yaml:"staticDir"`
	LogLevel    string   `yaml:"logLevel"`
	MaxFileSize int      `yaml:"maxFileSize"`
	GitHub      GitHub   `yaml:"github"`
	OpenAI      OpenAI   `yaml:"openai"`
	Timeouts    Timeouts `yaml:"timeouts"`
}

// GitHub represents hosting API settings
type GitHub struct {
	Token   string   `yaml:"token"`
	BaseURL string   `yaml:"baseURL"`
	Timeout Duration `yaml:"timeout"`
}

// OpenAI represents language model API settings
type OpenAI struct {
	APIKey           string `yaml:"apiKey"`
	BaseURL          string `yaml:"baseURL"`
	ChatModel        string `yaml:"chatModel"`
	ChatMaxTokens    int    `yaml:"chatMaxTokens"`
	ExplainModel     string `yaml:"explainModel"`
	ExplainMaxTokens int    `yaml:"explainMaxTokens"`
	HistoryLimit     int    `yaml:"historyLimit"`
}

// Timeouts represents end to end request timeouts
type Timeouts struct {
	Analyze Duration `yaml:"analyze"`
	Chat    Duration `yaml:"chat"`
	Explain Duration `yaml:"explain"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	model := assistant.DefaultConfig()
	return &Config{
		Port:        3000,
		LogLevel:    "info",
		MaxFileSize: tree.MaxFileSize,
		GitHub:      GitHub{Timeout: Duration(repository.DefaultTimeout)},
		OpenAI: OpenAI{
			ChatModel:        model.ChatModel,
			ChatMaxTokens:    model.ChatMaxTokens,
			ExplainModel:     model.ExplainModel,
			ExplainMaxTokens: model.ExplainMaxTokens,
			HistoryLimit:     model.HistoryLimit,
		},
		Timeouts: Timeouts{
			Analyze: Duration(120 * time.Second),
			Chat:    Duration(30 * time.Second),
			Explain: Duration(60 * time.Second),
		},
	}
}

// Load loads YAML configuration from any afs supported URL, unset fields keep default values
func Load(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}

// LoadDotEnv loads .env files into the process environment, existing variables are kept
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %v: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration with environment variables
func (c *Config) ApplyEnv() error {
	if value, ok := os.LookupEnv(EnvGitHubToken); ok {
		c.GitHub.Token = value
	}
	if value, ok := os.LookupEnv(EnvGitHubAPIURL); ok {
		c.GitHub.BaseURL = value
	}
	if value, ok := os.LookupEnv(EnvOpenAIKey); ok {
		c.OpenAI.APIKey = value
	}
	if value, ok := os.LookupEnv(EnvOpenAIBaseURL); ok {
		c.OpenAI.BaseURL = value
	}
	if value, ok := os.LookupEnv(EnvPort); ok && value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %v: %w", EnvPort, err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %v", c.Port)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("invalid maxFileSize: %v", c.MaxFileSize)
	}
	return nil
}

// Repository returns hosting API client options
func (c *Config) Repository() repository.Options {
	return repository.Options{Token: c.GitHub.Token, BaseURL: c.GitHub.BaseURL, Timeout: c.GitHub.Timeout.Duration()}
}

// Assistant returns language model settings
func (c *Config) Assistant() *assistant.Config {
	return &assistant.Config{
		APIKey:           c.OpenAI.APIKey,
		BaseURL:          c.OpenAI.BaseURL,
		ChatModel:        c.OpenAI.ChatModel,
		ChatMaxTokens:    c.OpenAI.ChatMaxTokens,
		ExplainModel:     c.OpenAI.ExplainModel,
		ExplainMaxTokens: c.OpenAI.ExplainMaxTokens,
		HistoryLimit:     c.OpenAI.HistoryLimit,
	}
}
