// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tailor wires extraction, rewriting and rendering into the
// upload-to-download pipeline. The three stage functions are exported for
// callers that drive stages individually; Pipeline runs them in sequence.
package tailor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/resume-tailor/internal/classify"
	"github.com/pdiddy/resume-tailor/internal/extract"
	"github.com/pdiddy/resume-tailor/internal/render"
	"github.com/pdiddy/resume-tailor/internal/transform"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

// ExtractText returns the text and first-page geometry of the PDF at path.
// A document that parses but holds only whitespace fails with an
// ExtractionError wrapping types.ErrNoText.
func ExtractText(path string) (string, types.Geometry, error) {
	text, geom, err := extract.Text(path)
	if err != nil {
		return "", types.Geometry{}, err
	}
	if strings.TrimSpace(text) == "" {
		return "", types.Geometry{}, &types.ExtractionError{Op: "reading " + path, Err: types.ErrNoText}
	}
	return text, geom, nil
}

// TailorText rewrites text for jobDescription with t and strips a code fence
// wrapping the whole answer. Any failure is a TransformError; nothing is
// retried.
func TailorText(ctx context.Context, t transform.Transformer, text, jobDescription string, creds transform.Credentials) (string, error) {
	out, err := t.Transform(ctx, text, jobDescription, creds)
	if err != nil {
		return "", &types.TransformError{Op: "rewriting resume", Err: err}
	}
	out = transform.StripFences(out)
	if out == "" {
		return "", &types.TransformError{Op: "rewriting resume", Err: errors.New("service returned no text")}
	}
	return out, nil
}

// RenderDocument classifies text with the strategy's preset and renders it to
// target at the page size of sourcePath's first page.
func RenderDocument(text, sourcePath, target string, s render.Strategy) (*render.Document, error) {
	geom, err := extract.ReadGeometry(sourcePath)
	if err != nil {
		return nil, &types.RenderError{Op: "reading source geometry", Err: err}
	}
	lines := classify.Lines(text, s.Preset())
	return render.RenderFile(lines, geom, s, target)
}

// previewRunes is the length of the text preview returned to callers.
const previewRunes = 500

// Preview returns the first 500 characters of text followed by "...".
func Preview(text string) string {
	r := []rune(text)
	if len(r) > previewRunes {
		r = r[:previewRunes]
	}
	return fmt.Sprintf("%s...", string(r))
}
