package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/specdoc/specindex"
)

// NewIndexCmd creates the index command: scan a collection of bundles and
// write the summary index page.
func NewIndexCmd() *cobra.Command {
	var (
		templatePath string
		rootURI      string
		rootPath     string
		version      string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "index GLOB...",
		Short: "Write an HTML index for a set of specifications",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := specindex.Discover(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no specifications matched")
			}

			builder := specindex.NewBuilder(slog.Default())
			for _, path := range paths {
				if err := builder.AddSpec(path, rootURI, rootPath); err != nil {
					slog.Warn("skipping specification",
						slog.String("path", path), slog.String("error", err.Error()))
				}
			}

			out, err := builder.Build(templatePath, version)
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Print(out)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("write index: %w", err)
			}
			slog.Info("index written",
				slog.String("output", outputPath),
				slog.Int("specs", len(paths)),
				slog.Int("warnings", len(builder.Warnings())))
			return nil
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "Index template file")
	cmd.Flags().StringVar(&rootURI, "root-uri", "", "Root URI for specifications")
	cmd.Flags().StringVar(&rootPath, "root-path", ".", "Root path for relative link targets")
	cmd.Flags().StringVar(&version, "collection-version", "", "Collection release version")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
