package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/specdoc/news"
	"github.com/c360studio/specdoc/store"
)

// NewNewsCmd creates the news command: write a NEWS file in changelog
// format from release data.
func NewNewsCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "news DATA_FILE...",
		Short: "Write a NEWS file from RDF release data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New()
			loader := store.NewLoader(slog.Default())
			for _, path := range args {
				if err := loader.LoadFile(st, path); err != nil {
					return err
				}
			}

			writer := news.NewWriter(slog.Default())
			entries := writer.ProjectEntries(st)
			if len(entries) == 0 {
				return fmt.Errorf("no complete releases found")
			}
			out := writer.Render(entries)

			if outputPath == "" {
				fmt.Print(out)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("write news: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}
