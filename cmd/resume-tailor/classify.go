// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-tailor/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text-file]",
	Short: "Tag each line of resume text with its structural role",
	Long: `Classify reads plain text from a file (or stdin when no file or - is
given) and prints one YAML record per line with its index, trimmed text and
role: title, heading, bullet, body or blank.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("preset", classify.PresetParagraph.Name, "classifier preset: paragraph or strict")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("preset")
	preset, err := classify.PresetByName(name)
	if err != nil {
		return err
	}

	text, err := readTextArg(args)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(classify.Lines(text, preset)); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return enc.Close()
}

// readTextArg reads the file named by args[0], or stdin when args is empty
// or names "-".
func readTextArg(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		text, err := readAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return text, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
