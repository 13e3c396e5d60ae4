// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform rewrites resume text against a job description through a
// generative language service. Each backend makes exactly one call per
// Transform; retries belong to the caller.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

// Credentials authenticate one call. They are passed explicitly on every
// call; backends keep no credential state.
type Credentials struct {
	APIKey string
}

// Transformer rewrites originalText to match jobDescription and returns plain
// text that keeps the original's line structure.
type Transformer interface {
	Transform(ctx context.Context, originalText, jobDescription string, creds Credentials) (string, error)
}

const defaultMaxTokens = 8192

// New returns the backend selected by cfg.Provider. client is used by the
// raw HTTP backends; nil selects http.DefaultClient.
func New(cfg types.TransformConfig, client *http.Client) (Transformer, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	switch cfg.Provider {
	case "", types.ProviderGemini:
		return &GeminiBackend{Model: cfg.Model, BaseURL: cfg.BaseURL, MaxTokens: maxTokens, Client: client}, nil
	case types.ProviderClaude:
		return &ClaudeBackend{Model: cfg.Model, BaseURL: cfg.BaseURL, MaxTokens: maxTokens, Client: client}, nil
	case types.ProviderOpenAI:
		return &OpenAIBackend{Model: cfg.Model, BaseURL: cfg.BaseURL, MaxTokens: maxTokens}, nil
	}
	return nil, fmt.Errorf("unknown transform provider %q", cfg.Provider)
}

// fence is the marker a model uses to open or close a code block.
const fence = "```"

// StripFences trims s and, when the whole answer is wrapped in a fenced code
// block, removes the opening marker line and the closing marker line. Inner
// content is left untouched.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, fence) {
		return s
	}

	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), fence) {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

// tailorPromptTmpl instructs the model to rewrite the resume while keeping
// its sections, order and line layout so the result can be re-rendered.
var tailorPromptTmpl = template.Must(template.New("tailor").Parse(`You are an expert ATS resume optimizer. Given the original resume and job description, rewrite the resume content to be tailored to the job while MAINTAINING THE EXACT SAME FORMAT AND STRUCTURE.

ORIGINAL RESUME:
{{.Resume}}

JOB DESCRIPTION:
{{.JobDescription}}

CRITICAL INSTRUCTIONS:
1. Keep the EXACT SAME sections, order, and structure as the original resume
2. Keep all contact information unchanged (name, email, phone)
3. Enhance and optimize the content to match the job description keywords
4. Quantify achievements with metrics where possible
5. Use strong action verbs from the job description
6. Make it ATS-friendly by matching relevant keywords
7. DO NOT add new sections or remove existing ones
8. DO NOT change the person's actual work history or education
9. ONLY enhance the descriptions and achievements
10. Keep the same formatting style (bullets, spacing, capitalization)

OUTPUT FORMAT:
Return the tailored resume in plain text, one line per line of the original, preserving the original structure EXACTLY. Use the same section headers, bullet points, and formatting as the original. Do not use Markdown.
`))

// renderPrompt executes the tailoring prompt template.
func renderPrompt(resume, jobDescription string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Resume, JobDescription string }{resume, jobDescription}
	if err := tailorPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func requireKey(creds Credentials) error {
	if strings.TrimSpace(creds.APIKey) == "" {
		return fmt.Errorf("missing API key")
	}
	return nil
}
