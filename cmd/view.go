package cmd

import (
	"github.com/spf13/cobra"

	"github.com/common-creation/tokenscope/internal/ui"
)

func (c *cli) newViewCmd() *cobra.Command {
	var openaiFormat bool

	viewCmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse a transcript interactively",
		Long: `Open a scrollable view of a transcript with per-message token counts and
a context usage bar.

Keys: j/k scroll, n/p jump between messages, t toggles counts, ? help, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTranscript(cmd, args[0], openaiFormat)
			if err != nil {
				return err
			}

			model := ui.NewModel(ui.ModelOptions{
				Title:      displayName(args[0]),
				Transcript: t,
				Estimator:  c.estimator,
				Model:      c.modelFor(t),
				Theme:      c.cfg.UI.Theme,
				NoColor:    c.cfg.UI.NoColor,
				Logger:     c.logger,
			})

			app := ui.NewApp(cmd.Context(), model, ui.AppOptions{
				Logger:   c.logger,
				Output:   cmd.OutOrStdout(),
				InputTTY: args[0] == stdinPath,
			})
			return app.Run()
		},
	}

	viewCmd.Flags().BoolVar(&openaiFormat, "openai", false, "parse FILE strictly as an OpenAI chat completion request")

	return viewCmd
}
