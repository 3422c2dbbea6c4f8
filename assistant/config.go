package assistant

import openai "github.com/sashabaranov/go-openai"

// Config represents language model settings
type Config struct {
	APIKey           string
	BaseURL          string
	ChatModel        string
	ChatMaxTokens    int
	ExplainModel     string
	ExplainMaxTokens int
	HistoryLimit     int // number of most recent conversation turns forwarded to the model
}

// DefaultConfig returns default language model settings
func DefaultConfig() *Config {
	return &Config{
		ChatModel:        openai.GPT4oMini,
		ChatMaxTokens:    1000,
		ExplainModel:     openai.GPT4,
		ExplainMaxTokens: 1500,
		HistoryLimit:     10,
	}
}
