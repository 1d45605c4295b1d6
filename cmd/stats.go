package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Zachkp/terminal-portfolio/internal/visitors"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show page view statistics",
	Long: `stats summarises the page views recorded by the server: totals, unique
visitors, today, the last seven days and the most viewed paths. Visitors are
identified only by salted hashes of their addresses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := visitors.Open(appConfig.Stats.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		tracker, err := visitors.NewTracker(cmd.Context(), db, appConfig.Stats.Salt, logger)
		if err != nil {
			return err
		}
		stats, err := tracker.Stats(cmd.Context())
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

var (
	statsTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF41"))
	statsLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC")).Width(18)
	statsDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	statsBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)
)

func printStats(w io.Writer, s *visitors.Stats) {
	var b strings.Builder
	row := func(label string, v int64) {
		fmt.Fprintf(&b, "%s%d\n", statsLabel.Render(label), v)
	}
	b.WriteString(statsTitle.Render("Page views"))
	b.WriteString("\n")
	row("Total", s.TotalViews)
	row("Unique visitors", s.UniqueVisitors)
	row("Today", s.ViewsToday)
	row("Last 7 days", s.ViewsThisWeek)

	b.WriteString("\n")
	b.WriteString(statsTitle.Render("Top paths"))
	b.WriteString("\n")
	if len(s.TopPaths) == 0 {
		b.WriteString(statsDim.Render("no views recorded"))
		b.WriteString("\n")
	}
	for _, p := range s.TopPaths {
		row(p.Path, p.Views)
	}

	fmt.Fprintln(w, statsBox.Render(strings.TrimRight(b.String(), "\n")))
}
