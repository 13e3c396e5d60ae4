// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-tailor/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tailoring pipeline over HTTP",
	Long: `Serve starts the HTTP API:

  GET  /api/health
  POST /api/tailor-resume        multipart: resume, job_description, api_key
  GET  /api/download/:filename

Requests without api_key use the configured key. Uploads and rendered PDFs
live in server.upload_dir.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :5000)")
	serveCmd.Flags().String("upload-dir", "", "directory for uploads and outputs (default uploads)")
	serveCmd.Flags().Int("max-upload-mb", 0, "request body limit in MB (default 16)")
	serveCmd.Flags().Duration("transform-timeout", 0, "time limit for one tailoring request (default 2m)")
	serveCmd.Flags().String("provider", "", "transform provider: gemini, claude, openai")
	serveCmd.Flags().String("strategy", "", "render strategy: line or paragraph")
	serveCmd.Flags().String("history-db", "", "SQLite file recording each run")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, map[string]string{
		"addr":              "server.addr",
		"upload-dir":        "server.upload_dir",
		"max-upload-mb":     "server.max_upload_mb",
		"transform-timeout": "server.transform_timeout",
		"provider":          "transform.provider",
		"strategy":          "render.strategy",
		"history-db":        "history.db",
	})
	cfg := loadConfig()

	p, closeHistory, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	s, err := server.New(cfg.Server, p, cfg.Transform.APIKey, logrus.StandardLogger())
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- s.Listen() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errc:
		return err
	case <-sig:
		logrus.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	}
}
