package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokensFormat string

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Tokenize a file and dump the tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd, tokensFormat)
	if err != nil {
		return err
	}

	c, result, err := compileFile(cmd, args[0], format)
	if err != nil {
		return err
	}

	output, err := c.RenderTokens(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
