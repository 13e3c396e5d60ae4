// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-tailor/internal/extract"
	"github.com/pdiddy/resume-tailor/internal/tailor"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume.pdf>",
	Short: "Print the text layer of a PDF",
	Long: `Extract prints the plain text of every page of a PDF, in page order.
With --info it prints the first-page geometry and the contact details found
in the text as YAML instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("info", false, "print geometry and contact details as YAML")

	rootCmd.AddCommand(extractCmd)
}

// extractInfo is the --info output.
type extractInfo struct {
	File     string         `yaml:"file"`
	Geometry types.Geometry `yaml:"geometry"`
	Contact  types.Contact  `yaml:"contact"`
	Chars    int            `yaml:"chars"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, geom, err := tailor.ExtractText(args[0])
	if err != nil {
		return err
	}

	info, _ := cmd.Flags().GetBool("info")
	if !info {
		fmt.Fprintln(os.Stdout, text)
		return nil
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(extractInfo{
		File:     args[0],
		Geometry: geom,
		Contact:  extract.ParseContact(text),
		Chars:    len([]rune(text)),
	})
}
