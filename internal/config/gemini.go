package config

import "time"

const (
	defaultGeminiURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
	defaultGeminiTimeout = 30 * time.Second
)

type GeminiConfig struct {
	URL        string        `yaml:"base-url"`
	ModelID    string        `yaml:"model"`
	Key        string        `yaml:"api-key"`
	Timeout    time.Duration `yaml:"request-timeout"`
	Structured bool          `yaml:"structured-output"`
}

func (g *GeminiConfig) BaseURL() string {
	return g.URL
}

func (g *GeminiConfig) Model() string {
	return g.ModelID
}

func (g *GeminiConfig) ApiKey() string {
	return g.Key
}

func (g *GeminiConfig) RequestTimeout() time.Duration {
	return g.Timeout
}

func (g *GeminiConfig) StructuredOutput() bool {
	return g.Structured
}
