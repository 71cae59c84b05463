package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file and dump its syntax tree",
	Long: `Parse a rill source file and print the syntax tree as JSON or YAML.

Diagnostics are printed to stderr; the tree is printed even when it
contains error placeholders. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd, parseFormat)
	if err != nil {
		return err
	}

	c, result, err := compileFile(cmd, args[0], format)
	if err != nil {
		return err
	}

	output, err := c.Render(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
