package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "article-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIProvider identifies the completion API behind the Completer interface.
type AIProvider string

const (
	ProviderClaude AIProvider = "claude"
	ProviderOpenAI AIProvider = "openai"
)

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Provider selects the completion API: claude or openai.
	Provider AIProvider `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// WriterConfig holds settings for the article generation stage.
type WriterConfig struct {
	AIConfig `yaml:",inline"`

	// MaxReviewCycles bounds the regenerate-and-re-review loop (default 2).
	MaxReviewCycles int `json:"max_review_cycles" yaml:"max_review_cycles"`

	// RequestDelay is the fixed pause after each section generation call,
	// sized to stay inside provider rate limits (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// LinkerConfig holds settings for the internal linking stage.
type LinkerConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// MaxLinks is the default number of links to request (default 5).
	MaxLinks int `json:"max_links" yaml:"max_links"`
}

// AnalyzeConfig holds settings for the competitor research stage.
type AnalyzeConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// SearchAPIKey authenticates the web search backend.
	SearchAPIKey string `json:"search_api_key,omitempty" yaml:"search_api_key,omitempty"`

	// ScrapeAPIKey authenticates the page scraping backend.
	ScrapeAPIKey string `json:"scrape_api_key,omitempty" yaml:"scrape_api_key,omitempty"`

	// MaxCompetitors is the number of competitor pages analyzed (default 5).
	MaxCompetitors int `json:"max_competitors" yaml:"max_competitors"`
}

// StoreConfig holds settings for client profile storage.
type StoreConfig struct {
	// DataDir is the directory containing the profile database (default ".").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Writer  WriterConfig  `json:"writer" yaml:"writer"`
	Linker  LinkerConfig  `json:"linker" yaml:"linker"`
	Analyze AnalyzeConfig `json:"analyze" yaml:"analyze"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
