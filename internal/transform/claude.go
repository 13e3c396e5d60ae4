// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/resume-tailor/internal/httputil"
)

const (
	defaultClaudeBaseURL = "https://api.anthropic.com/v1"
	defaultClaudeModel   = "claude-sonnet-4-5-20250929"
	anthropicVersion     = "2023-06-01"
)

// ClaudeBackend calls the Claude Messages API.
type ClaudeBackend struct {
	Model     string
	BaseURL   string
	MaxTokens int
	Client    *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Transform sends the tailoring prompt as one user message and joins the
// text blocks of the answer.
func (c *ClaudeBackend) Transform(ctx context.Context, originalText, jobDescription string, creds Credentials) (string, error) {
	if err := requireKey(creds); err != nil {
		return "", err
	}
	prompt, err := renderPrompt(originalText, jobDescription)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := c.Model
	if model == "" {
		model = defaultClaudeModel
	}
	base := c.BaseURL
	if base == "" {
		base = defaultClaudeBaseURL
	}

	req := claudeRequest{
		Model:     model,
		MaxTokens: c.MaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}
	header := http.Header{}
	header.Set("x-api-key", creds.APIKey)
	header.Set("anthropic-version", anthropicVersion)

	var resp claudeResponse
	if err := httputil.PostJSON(ctx, c.Client, strings.TrimSuffix(base, "/")+"/messages", header, req, &resp); err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no text content in Claude API response")
	}
	return b.String(), nil
}
