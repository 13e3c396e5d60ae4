// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrNoText reports a document that opened cleanly but carries no
// extractable characters.
var ErrNoText = errors.New("no extractable text")

// ExtractionError reports an unreadable or unsupported input document, or one
// with zero extractable content.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction: %s: %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TransformError reports a failed call to the rewriting service: auth, quota,
// network or an unusable answer.
type TransformError struct {
	Op  string
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform: %s: %v", e.Op, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// RenderError reports unreadable source geometry or a failed output write.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Error kinds returned by ErrorKind.
const (
	KindExtraction = "extraction"
	KindTransform  = "transform"
	KindRender     = "render"
)

// ErrorKind names the pipeline stage an error came from, or "" when err is
// nil or not a stage error.
func ErrorKind(err error) string {
	var (
		ee *ExtractionError
		te *TransformError
		re *RenderError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ee):
		return KindExtraction
	case errors.As(err, &te):
		return KindTransform
	case errors.As(err, &re):
		return KindRender
	}
	return ""
}
