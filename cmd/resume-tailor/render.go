// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-tailor/internal/render"
	"github.com/pdiddy/resume-tailor/internal/tailor"
)

var renderCmd = &cobra.Command{
	Use:   "render [text-file]",
	Short: "Render plain resume text to a PDF sized like a source PDF",
	Long: `Render classifies plain text (from a file, or stdin) and lays it out
with the selected strategy on pages of the same size as the first page of
--source. No generative service is called.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("source", "", "PDF whose first-page size the output uses (required)")
	renderCmd.Flags().StringP("output", "o", "", "output PDF (required)")
	renderCmd.Flags().String("strategy", "", "render strategy: line or paragraph")
	_ = renderCmd.MarkFlagRequired("source")
	_ = renderCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, map[string]string{"strategy": "render.strategy"})
	cfg := loadConfig()

	strategy, err := render.StrategyByName(cfg.Render.Strategy)
	if err != nil {
		return err
	}
	text, err := readTextArg(args)
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	output, _ := cmd.Flags().GetString("output")
	doc, err := tailor.RenderDocument(text, source, output, strategy)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s (%d page(s), %.0fx%.0f pt, %s strategy)\n",
		output, len(doc.Pages), doc.Geometry.Width, doc.Geometry.Height, strategy.Name())
	return nil
}
