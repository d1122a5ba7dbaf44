package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) newCountCmd() *cobra.Command {
	var (
		file string
		raw  bool
	)

	countCmd := &cobra.Command{
		Use:   "count [text...]",
		Short: "Count the tokens in a piece of text",
		Long: `Count the tokens a piece of text encodes to for the configured model,
and show how much of the model's context window it uses.

Examples:
  # Count arguments
  tokenscope count "Hello, world"

  # Read from a file
  tokenscope count --file prompt.txt --model gpt-4

  # Pipe input and print only the number
  cat prompt.txt | tokenscope count --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if text, err = readText(cmd, file); err != nil {
					return err
				}
			}

			model := c.cfg.Model
			count := c.estimator.CountTokens(text, model)

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			}

			r := c.newReporter(cmd.OutOrStdout(), model)
			r.PrintInfo(fmt.Sprintf("%d tokens (model: %s, encoding: %s)",
				count, model, c.estimator.Encoder(model).Name()))
			r.VisualizeModelUsage(count, "Context Usage")
			return nil
		},
	}

	countCmd.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")
	countCmd.Flags().BoolVar(&raw, "raw", false, "print only the token count")

	return countCmd
}
