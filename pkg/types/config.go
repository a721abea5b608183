// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by sources that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search source.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of hits compiled into an answer (default 3,
	// capped at 5 for the standalone search surface).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LLMConfig holds settings for the generative-AI source. An empty APIKey
// is tolerated: construction succeeds and the gemini/auto paths degrade
// to the local or web fallbacks.
type LLMConfig struct {
	// Model is the model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the generative-AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the request timeout for one generation call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":5000").
	Addr string `json:"addr" yaml:"addr"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	LLM    LLMConfig    `json:"llm" yaml:"llm"`
	Search SearchConfig `json:"search" yaml:"search"`
	Server ServerConfig `json:"server" yaml:"server"`
}
