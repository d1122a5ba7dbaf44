package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newMessagesCmd() *cobra.Command {
	var openaiFormat bool

	messagesCmd := &cobra.Command{
		Use:   "messages FILE",
		Short: "Show a transcript with per-message token counts",
		Long: `Print every message of a transcript with its token count, the estimated
total for the whole request, and the share of the model's context window it
uses. Use - to read the transcript from stdin.

The model is taken from --model, then the transcript's "model" field, then
the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTranscript(cmd, args[0], openaiFormat)
			if err != nil {
				return err
			}

			model := c.modelFor(t)
			r := c.newReporter(cmd.OutOrStdout(), model)

			r.PrintHeader(displayName(args[0]))
			r.PrintMessages(t.Messages, "Messages")

			total := c.estimator.EstimateTokensForMessages(t.Messages, model)
			r.VisualizeModelUsage(total, fmt.Sprintf("Context Usage (%s)", model))

			if window := c.estimator.ContextWindowSize(model); total > window {
				r.PrintWarning(fmt.Sprintf("Transcript exceeds the %s context window by %d tokens", model, total-window))
			}
			return nil
		},
	}

	messagesCmd.Flags().BoolVar(&openaiFormat, "openai", false, "parse FILE strictly as an OpenAI chat completion request")

	return messagesCmd
}
