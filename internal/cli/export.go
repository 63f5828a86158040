package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/csvexport"
)

func newExportCommand(r *root) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:       "export reservations|messages",
		Short:     "Write reservations or contact messages to a CSV file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"reservations", "messages"},
		RunE: r.run(func(cmd *cobra.Command, args []string, e *env) error {
			var render func(context.Context) (*domain.CSVExport, error)
			switch args[0] {
			case "reservations":
				render = e.services.Exports.Reservations
			case "messages":
				render = e.services.Exports.Messages
			}

			export, err := render(cmd.Context())
			if errors.Is(err, csvexport.ErrNoData) {
				warning.Fprintf(cmd.OutOrStdout(), "No %s to export\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outDir, err)
			}
			path := filepath.Join(outDir, export.Filename)
			if err := os.WriteFile(path, export.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			success.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", export.Rows, path)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory the CSV file is written to")
	return cmd
}
