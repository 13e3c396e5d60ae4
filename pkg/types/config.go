// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Provider identifies the generative text service used for rewriting.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// TransformConfig holds settings for the rewriting stage.
type TransformConfig struct {
	// Provider selects the backend: gemini, claude, or openai (default gemini).
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gemini-2.5-flash"). Empty selects
	// the provider default.
	Model string `json:"model" yaml:"model"`

	// APIKey is the default credential used when a request carries none.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxTokens caps the length of the rewritten resume (default 8192).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// RenderStrategy selects how rewritten text is laid out.
type RenderStrategy string

const (
	StrategyLineDraw      RenderStrategy = "line"
	StrategyParagraphFlow RenderStrategy = "paragraph"
)

// RenderConfig holds settings for the rendering stage.
type RenderConfig struct {
	// Strategy is line or paragraph (default paragraph).
	Strategy RenderStrategy `json:"strategy" yaml:"strategy"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr"`

	// UploadDir holds uploaded originals and rendered outputs (default "uploads").
	UploadDir string `json:"upload_dir" yaml:"upload_dir"`

	// MaxUploadMB is the request body limit in megabytes (default 16).
	MaxUploadMB int `json:"max_upload_mb" yaml:"max_upload_mb"`

	// TransformTimeout bounds one tailoring request (default 2m).
	TransformTimeout time.Duration `json:"transform_timeout" yaml:"transform_timeout"`
}

// HistoryConfig holds settings for the run ledger.
type HistoryConfig struct {
	// DBPath is the SQLite file. Empty disables the ledger.
	DBPath string `json:"db" yaml:"db"`
}

// Config groups all settings.
type Config struct {
	Transform TransformConfig `json:"transform" yaml:"transform"`
	Render    RenderConfig    `json:"render" yaml:"render"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}
