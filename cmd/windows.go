package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/common-creation/tokenscope/internal/styles"
	"github.com/common-creation/tokenscope/internal/tokens"
)

func (c *cli) newWindowsCmd() *cobra.Command {
	var used int

	windowsCmd := &cobra.Command{
		Use:   "windows [MODEL...]",
		Short: "List model context window sizes",
		Long: `List the context window size of every known model, or of the given
models. Unknown models report the default window of ` + strconv.Itoa(tokens.DefaultContextWindow) + ` tokens.

With --used, also show what percentage of each window that many tokens fill.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			windows := c.estimator.Windows()

			models := args
			if len(models) == 0 {
				models = windows.Models()
			}

			renderer := lipgloss.NewRenderer(cmd.OutOrStdout())
			if c.cfg.UI.NoColor {
				renderer.SetColorProfile(termenv.Ascii)
			}
			st := styles.NewStyles(styles.GetTheme(c.cfg.UI.Theme), renderer)
			printer := message.NewPrinter(language.English)

			headers := []string{"MODEL", "CONTEXT WINDOW"}
			if cmd.Flags().Changed("used") {
				headers = append(headers, "USED")
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(st.Muted).
				Headers(headers...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return st.Bold.Padding(0, 1)
					}
					if col == 0 {
						return st.Label.Padding(0, 1)
					}
					return renderer.NewStyle().Padding(0, 1).Align(lipgloss.Right)
				})

			for _, model := range models {
				row := []string{model, printer.Sprintf("%d", windows.Size(model))}
				if cmd.Flags().Changed("used") {
					row = append(row, fmt.Sprintf("%.1f%%", windows.Percentage(used, model)))
				}
				t.Row(row...)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	windowsCmd.Flags().IntVar(&used, "used", 0, "token count to express as a percentage of each window")

	return windowsCmd
}
