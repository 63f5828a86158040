package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

func newVisitorsCommand(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "Inspect or reset the visitor counter",
	}

	var top int
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print totals, daily counts and top devices, browsers and systems",
		RunE: r.run(func(cmd *cobra.Command, args []string, e *env) error {
			s, err := e.services.Visitors.Stats(cmd.Context(), top)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), s)
			return nil
		}),
	}
	stats.Flags().IntVar(&top, "top", 0, "entries per breakdown (0 uses the server default)")

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Zero the running total. Daily counts are kept.",
		RunE: r.run(func(cmd *cobra.Command, args []string, e *env) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			if err := e.services.Visitors.Reset(cmd.Context()); err != nil {
				return err
			}
			success.Fprintln(cmd.OutOrStdout(), "Visitor count reset")
			return nil
		}),
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	cmd.AddCommand(stats, reset)
	return cmd
}

func printStats(out io.Writer, s *domain.VisitorStats) {
	heading.Fprintf(out, "Total visitors: %d\n", s.Total)

	if len(s.Daily) > 0 {
		heading.Fprintln(out, "Daily")
		for _, d := range s.Daily {
			fmt.Fprintf(out, "  %s  %d\n", d.Date, d.Count)
		}
	}

	breakdowns := []struct {
		title   string
		entries []domain.BreakdownEntry
	}{
		{"Devices", s.Devices},
		{"Browsers", s.Browsers},
		{"Operating systems", s.OS},
	}
	for _, b := range breakdowns {
		if len(b.entries) == 0 {
			continue
		}
		heading.Fprintf(out, "%s (last %d visits)\n", b.title, s.Window)
		for _, entry := range b.entries {
			fmt.Fprintf(out, "  %-16s %d\n", entry.Name, entry.Count)
		}
	}
}
