// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIBackend calls an OpenAI-compatible chat completions endpoint. A client
// is built per call from the call's credentials, with SDK retries disabled.
type OpenAIBackend struct {
	Model     string
	BaseURL   string
	MaxTokens int
}

func (o *OpenAIBackend) Transform(ctx context.Context, originalText, jobDescription string, creds Credentials) (string, error) {
	if err := requireKey(creds); err != nil {
		return "", err
	}
	prompt, err := renderPrompt(originalText, jobDescription)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(creds.APIKey),
		option.WithMaxRetries(0),
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	client := openai.NewClient(opts...)

	model := o.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     model,
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxTokens: openai.Int(int64(o.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("OpenAI API returned empty content")
	}
	return text, nil
}
