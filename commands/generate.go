// Package commands defines the specdoc CLI commands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/specdoc/config"
	"github.com/c360studio/specdoc/generator"
)

// NewGenerateCmd creates the generate command: one ontology bundle in, one
// HTML document out.
func NewGenerateCmd() *cobra.Command {
	var (
		templateDir string
		styleURI    string
		docDir      string
		tagsPath    string
		listEmail   string
		listPage    string
		rootPath    string
		instances   bool
		copyStyle   bool
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "generate ONTOLOGY_TTL OUTPUT_HTML",
		Short: "Write HTML documentation for an RDF ontology",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(nil).Load()
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg, map[string]string{
				"template-dir": templateDir,
				"style-uri":    styleURI,
				"docdir":       docDir,
				"tags":         tagsPath,
				"list-email":   listEmail,
				"list-page":    listPage,
				"root-path":    rootPath,
			})
			if cmd.Flags().Changed("instances") {
				cfg.Output.Instances = instances
			}
			if copyStyle {
				cfg.Output.CopyStyle = true
			}

			specPath, outputPath := args[0], args[1]
			if watch {
				return watchAndGenerate(cfg, specPath, outputPath)
			}
			return generateOnce(cfg, specPath, outputPath)
		},
	}

	cmd.Flags().StringVar(&templateDir, "template-dir", "", "Template directory")
	cmd.Flags().StringVar(&styleURI, "style-uri", "", "Stylesheet URI")
	cmd.Flags().StringVar(&docDir, "docdir", "", "API documentation output directory")
	cmd.Flags().StringVar(&tagsPath, "tags", "", "Doxygen tags file")
	cmd.Flags().StringVar(&listEmail, "list-email", "", "Mailing list email address")
	cmd.Flags().StringVar(&listPage, "list-page", "", "Mailing list info page address")
	cmd.Flags().StringVarP(&rootPath, "root-path", "r", "", "Root path for the collection index link")
	cmd.Flags().BoolVarP(&instances, "instances", "i", true, "Document instances")
	cmd.Flags().BoolVar(&copyStyle, "copy-style", false, "Copy style.css next to the output")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate when the bundle directory changes")

	return cmd
}

func applyFlagOverrides(cfg *config.Config, flags map[string]string) {
	if v := flags["template-dir"]; v != "" {
		cfg.Template.Dir = v
	}
	if v := flags["style-uri"]; v != "" {
		cfg.Template.StyleURI = v
	}
	if v := flags["docdir"]; v != "" {
		cfg.Docs.Dir = v
	}
	if v := flags["tags"]; v != "" {
		cfg.Docs.Tags = v
	}
	if v := flags["list-email"]; v != "" {
		cfg.List.Email = v
	}
	if v := flags["list-page"]; v != "" {
		cfg.List.Page = v
	}
	if v := flags["root-path"]; v != "" {
		cfg.Root.Path = v
	}
}

func generateOnce(cfg *config.Config, specPath, outputPath string) error {
	opts := generator.Options{
		SpecPath:     specPath,
		TemplatePath: filepath.Join(cfg.Template.Dir, "template.html"),
		StyleURI:     cfg.Template.StyleURI,
		DocDir:       cfg.Docs.Dir,
		TagsPath:     cfg.Docs.Tags,
		ListEmail:    cfg.List.Email,
		ListPage:     cfg.List.Page,
		Instances:    cfg.Output.Instances,
	}
	if cfg.Root.Path != "" {
		opts.RootLink = filepath.Join(cfg.Root.Path, "index.html")
	}

	result, err := generator.Generate(opts, slog.Default())
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(result.HTML), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if cfg.Output.CopyStyle {
		if err := copyFile(
			filepath.Join(cfg.Template.Dir, "style.css"),
			filepath.Join(filepath.Dir(outputPath), "style.css"),
		); err != nil {
			return err
		}
	}

	slog.Info("documentation written",
		slog.String("spec", result.Name),
		slog.String("output", outputPath),
		slog.Int("warnings", len(result.Warnings)))
	return nil
}

// watchAndGenerate regenerates the output whenever a Turtle file in the
// bundle directory changes. An initial generation runs before watching.
func watchAndGenerate(cfg *config.Config, specPath, outputPath string) error {
	if err := generateOnce(cfg, specPath, outputPath); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(specPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Info("watching for changes", slog.String("dir", dir))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".ttl" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Info("bundle changed, regenerating", slog.String("file", event.Name))
			if err := generateOnce(cfg, specPath, outputPath); err != nil {
				slog.Error("regeneration failed", slog.String("error", err.Error()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", slog.String("error", err.Error()))
		}
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
