package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/common-creation/tokenscope/internal/report"
)

func (c *cli) newCompareCmd() *cobra.Command {
	var openaiFormat bool

	compareCmd := &cobra.Command{
		Use:   "compare BEFORE AFTER",
		Short: "Compare token usage of two transcripts",
		Long: `Compare the estimated token usage of a transcript before and after a
context reduction such as summarization or pruning.

Either transcript, but not both, may be "-" to read it from stdin.
Both transcripts are estimated with the same model: --model if given,
otherwise the BEFORE transcript's "model" field, otherwise the configuration.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinPath && args[1] == stdinPath {
				return fmt.Errorf("BEFORE and AFTER cannot both be read from stdin")
			}

			before, err := readTranscript(cmd, args[0], openaiFormat)
			if err != nil {
				return err
			}
			after, err := readTranscript(cmd, args[1], openaiFormat)
			if err != nil {
				return err
			}

			model := c.modelFor(before)
			r := c.newReporter(cmd.OutOrStdout(), model)

			beforeUsage := report.Usage{
				Tokens:   c.estimator.EstimateTokensForMessages(before.Messages, model),
				Messages: len(before.Messages),
			}
			afterUsage := report.Usage{
				Tokens:   c.estimator.EstimateTokensForMessages(after.Messages, model),
				Messages: len(after.Messages),
			}

			r.PrintHeader(fmt.Sprintf("%s vs %s", displayName(args[0]), displayName(args[1])))
			r.VisualizeModelUsage(beforeUsage.Tokens, "Before")
			r.VisualizeModelUsage(afterUsage.Tokens, "After")
			r.PrintComparison(beforeUsage, afterUsage)

			savings := report.ComputeSavings(beforeUsage, afterUsage)
			switch {
			case savings.Tokens > 0:
				r.PrintSuccess(fmt.Sprintf("Saved %d tokens (%.1f%%)", savings.Tokens, savings.Percentage))
			case savings.Tokens < 0:
				r.PrintWarning(fmt.Sprintf("AFTER uses %d more tokens than BEFORE", -savings.Tokens))
			default:
				r.PrintInfo("No change in token usage")
			}
			return nil
		},
	}

	compareCmd.Flags().BoolVar(&openaiFormat, "openai", false, "parse files strictly as OpenAI chat completion requests")

	return compareCmd
}
