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
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiBackend calls the Gemini generateContent REST endpoint.
type GeminiBackend struct {
	Model     string
	BaseURL   string
	MaxTokens int
	Client    *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Transform sends the tailoring prompt as a single user turn.
func (g *GeminiBackend) Transform(ctx context.Context, originalText, jobDescription string, creds Credentials) (string, error) {
	if err := requireKey(creds); err != nil {
		return "", err
	}
	prompt, err := renderPrompt(originalText, jobDescription)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := g.Model
	if model == "" {
		model = defaultGeminiModel
	}
	base := g.BaseURL
	if base == "" {
		base = defaultGeminiBaseURL
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(base, "/"), model)

	req := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: g.MaxTokens},
	}
	header := http.Header{}
	header.Set("x-goog-api-key", creds.APIKey)

	var resp geminiResponse
	if err := httputil.PostJSON(ctx, g.Client, url, header, req, &resp); err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}

	if resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("Gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("Gemini API returned empty text (finish reason %q)", resp.Candidates[0].FinishReason)
	}
	return b.String(), nil
}
