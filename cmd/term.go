package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/content"
	"github.com/Zachkp/terminal-portfolio/internal/terminal"
	"github.com/Zachkp/terminal-portfolio/internal/tui"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Open the portfolio terminal in this shell",
	Long: `term runs the site's toy terminal as a terminal program. Type 'help'
for the command list; 'exit' or Esc quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := content.NewStore(appConfig.Content.Source, appConfig.Content.Manifest, nil)
		doc, err := store.Load(cmd.Context())
		if err != nil {
			logger.Warn("content unavailable, commands will answer Loading...", zap.Error(err))
		}
		return tui.Run(cmd.Context(), terminal.New(doc), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}
