// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-tailor/internal/tailor"
	"github.com/pdiddy/resume-tailor/internal/transform"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor <resume.pdf>",
	Short: "Rewrite a resume for a job description and render a new PDF",
	Long: `Tailor extracts the text of a PDF resume, rewrites it for the job
description with the configured provider, and renders the result to a PDF with
the same page size as the original.

The job description is read from --job (a file, or - for stdin) or --job-text.`,
	Args: cobra.ExactArgs(1),
	RunE: runTailor,
}

func init() {
	tailorCmd.Flags().String("job", "", "file holding the job description (- for stdin)")
	tailorCmd.Flags().String("job-text", "", "job description text")
	tailorCmd.Flags().StringP("output", "o", "", "output PDF (default: tailored_<input> next to the input)")
	tailorCmd.Flags().String("provider", "", "transform provider: gemini, claude, openai")
	tailorCmd.Flags().String("model", "", "model identifier (default depends on provider)")
	tailorCmd.Flags().String("api-key", "", "API key for the provider")
	tailorCmd.Flags().String("strategy", "", "render strategy: line or paragraph")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, map[string]string{
		"provider": "transform.provider",
		"model":    "transform.model",
		"api-key":  "transform.api_key",
		"strategy": "render.strategy",
	})
	cfg := loadConfig()
	if cfg.Transform.APIKey == "" {
		return fmt.Errorf("no API key: set --api-key, transform.api_key, or .secrets/%s", secretsKeyFor(cfg))
	}

	jobDescription, err := readJobDescription(cmd)
	if err != nil {
		return err
	}

	source := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(source), "tailored_"+filepath.Base(source))
	}

	p, closeHistory, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	fmt.Fprintf(os.Stdout, "tailoring %s with %s (%s strategy)\n", source, cfg.Transform.Provider, p.Strategy.Name())
	res, err := p.Run(context.Background(), tailor.Request{
		SourcePath:     source,
		JobDescription: jobDescription,
		Credentials:    transform.Credentials{APIKey: cfg.Transform.APIKey},
		OutputPath:     output,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "wrote   %s (%d page(s))\n", res.OutputPath, res.Pages)
	if res.Contact.Name != "" || res.Contact.Email != "" {
		fmt.Fprintf(os.Stdout, "contact %s <%s> %s\n", res.Contact.Name, res.Contact.Email, res.Contact.Phone)
	}
	return nil
}

func readJobDescription(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("job-text")
	path, _ := cmd.Flags().GetString("job")

	var jd string
	switch {
	case text != "" && path != "":
		return "", fmt.Errorf("use either --job or --job-text, not both")
	case text != "":
		jd = text
	case path == "-":
		data, err := readAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading job description from stdin: %w", err)
		}
		jd = data
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		jd = string(data)
	}
	if strings.TrimSpace(jd) == "" {
		return "", fmt.Errorf("job description required: provide --job or --job-text")
	}
	return jd, nil
}
