// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tailor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/resume-tailor/internal/extract"
	"github.com/pdiddy/resume-tailor/internal/render"
	"github.com/pdiddy/resume-tailor/internal/transform"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

// Recorder persists the outcome of each run.
type Recorder interface {
	Record(ctx context.Context, run types.Run) error
}

// Pipeline runs extract, rewrite and render for one request at a time. It
// holds no per-request state, so one Pipeline may serve concurrent requests
// as long as they use distinct file names.
type Pipeline struct {
	Transformer transform.Transformer
	Strategy    render.Strategy
	Provider    types.Provider

	// Logger defaults to logrus.StandardLogger().
	Logger *logrus.Logger

	// History is optional.
	History Recorder
}

// Request is one tailoring job.
type Request struct {
	// SourcePath is the uploaded PDF.
	SourcePath string

	// SourceName is the user-facing file name; defaults to the base of SourcePath.
	SourceName string

	JobDescription string
	Credentials    transform.Credentials

	// OutputPath is where the tailored PDF is written.
	OutputPath string
}

// Result describes a completed run.
type Result struct {
	OutputPath string        `json:"output_path"`
	Preview    string        `json:"preview"`
	Contact    types.Contact `json:"contact"`
	Pages      int           `json:"pages"`
	Run        types.Run     `json:"run"`
}

// Run executes the stages in order and stops at the first failure. The
// returned error keeps its stage type.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	log := p.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	sourceName := req.SourceName
	if sourceName == "" {
		sourceName = filepath.Base(req.SourcePath)
	}

	run := types.Run{
		ID:         uuid.NewString(),
		SourceName: sourceName,
		Strategy:   p.Strategy.Name(),
		Provider:   p.Provider,
		StartedAt:  time.Now().UTC(),
	}
	entry := log.WithFields(logrus.Fields{
		"run":      run.ID,
		"file":     sourceName,
		"strategy": run.Strategy,
	})

	res, err := p.run(ctx, req, entry)

	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = types.RunFailed
		run.ErrorKind = types.ErrorKind(err)
		run.Error = err.Error()
		entry.WithError(err).WithField("kind", run.ErrorKind).Error("tailoring failed")
	} else {
		run.Status = types.RunSucceeded
		run.OutputName = filepath.Base(res.OutputPath)
		entry.WithFields(logrus.Fields{
			"output":   run.OutputName,
			"pages":    res.Pages,
			"duration": run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
		}).Info("tailoring succeeded")
	}
	res.Run = run

	if p.History != nil {
		if herr := p.History.Record(ctx, run); herr != nil {
			entry.WithError(herr).Warn("could not record run history")
		}
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, req Request, log *logrus.Entry) (Result, error) {
	start := time.Now()
	text, geom, err := ExtractText(req.SourcePath)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(logrus.Fields{
		"stage":    "extract",
		"chars":    len(text),
		"width":    geom.Width,
		"height":   geom.Height,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("extracted text")

	start = time.Now()
	tailored, err := TailorText(ctx, p.Transformer, text, req.JobDescription, req.Credentials)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(logrus.Fields{
		"stage":    "transform",
		"chars":    len(tailored),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("rewrote text")

	start = time.Now()
	doc, err := RenderDocument(tailored, req.SourcePath, req.OutputPath, p.Strategy)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(logrus.Fields{
		"stage":    "render",
		"pages":    len(doc.Pages),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("rendered document")

	return Result{
		OutputPath: req.OutputPath,
		Preview:    Preview(tailored),
		Contact:    extract.ParseContact(tailored),
		Pages:      len(doc.Pages),
	}, nil
}
