// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the tailoring pipeline over HTTP: an upload
// endpoint that returns a download link and a download endpoint that serves
// the rendered PDF.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/resume-tailor/internal/tailor"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

// Defaults applied by New to zero-valued ServerConfig fields.
const (
	DefaultAddr             = ":5000"
	DefaultUploadDir        = "uploads"
	DefaultMaxUploadMB      = 16
	DefaultTransformTimeout = 2 * time.Minute
)

// Server owns the fiber app and the directory holding uploads and outputs.
type Server struct {
	app        *fiber.App
	cfg        types.ServerConfig
	pipeline   *tailor.Pipeline
	defaultKey string
	log        *logrus.Logger
}

// New builds the HTTP surface around p. defaultKey is used when a request
// carries no api_key field.
func New(cfg types.ServerConfig, p *tailor.Pipeline, defaultKey string, log *logrus.Logger) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = DefaultMaxUploadMB
	}
	if cfg.TransformTimeout <= 0 {
		cfg.TransformTimeout = DefaultTransformTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		pipeline:   p,
		defaultKey: defaultKey,
		log:        log,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "resume-tailor",
		BodyLimit:             cfg.MaxUploadMB * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(cors.New())
	s.app.Use(s.logRequests)

	api := s.app.Group("/api")
	api.Get("/health", s.Health)
	api.Post("/tailor-resume", s.TailorResume)
	api.Get("/download/:filename", s.Download)

	return s, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Config returns the effective configuration after defaults.
func (s *Server) Config() types.ServerConfig { return s.cfg }

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.log.WithFields(logrus.Fields{
		"addr":       s.cfg.Addr,
		"upload_dir": s.cfg.UploadDir,
	}).Info("server listening")
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	s.log.WithFields(logrus.Fields{
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   status,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request")
	return err
}

// handleError renders errors escaping a handler as {"error": ...}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
