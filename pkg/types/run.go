// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus is the outcome of one tailoring run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run records one pass of the pipeline for the history ledger.
type Run struct {
	ID         string         `json:"id" yaml:"id"`
	SourceName string         `json:"source_name" yaml:"source_name"`
	OutputName string         `json:"output_name,omitempty" yaml:"output_name,omitempty"`
	Strategy   RenderStrategy `json:"strategy" yaml:"strategy"`
	Provider   Provider       `json:"provider" yaml:"provider"`
	Status     RunStatus      `json:"status" yaml:"status"`

	// ErrorKind is extraction, transform or render for failed runs.
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
