package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/qepting91/persona-lens/internal/collector"
	"github.com/qepting91/persona-lens/internal/config"
	"github.com/qepting91/persona-lens/internal/dashboard"
	"github.com/qepting91/persona-lens/internal/domain"
	"github.com/qepting91/persona-lens/internal/persona"
	"github.com/qepting91/persona-lens/internal/pipeline"
	"github.com/qepting91/persona-lens/internal/storage"
)

func main() {
	godotenv.Load()

	root := &cobra.Command{
		Use:   "persona",
		Short: "Generate AI personality profiles from public Reddit activity",
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		url    string
		depth  int
		model  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one Reddit profile and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Diagnostics to stderr; stdout carries only progress lines.
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			slog.SetDefault(logger)

			if !domain.ValidModel(model) {
				return fmt.Errorf("unknown model %q (choose one of %v)", model, domain.Models())
			}

			cfg := config.FromEnv()
			if err := cfg.Validate(); err != nil {
				return reportFailure(err)
			}

			gen, err := persona.NewGenerator(cfg.GroqAPIKey, domain.Model(model))
			if err != nil {
				return reportFailure(err)
			}

			col, err := collector.New(cfg)
			if err != nil {
				return reportFailure(err)
			}

			fmt.Println("Digital Persona Analyzer")
			fmt.Println("========================")

			p := pipeline.New(col, gen, storage.NewWriter(output), logger)
			p.Progress = func(line string) { fmt.Println(line) }

			result, err := p.Run(cmd.Context(), url, depth)
			if err != nil {
				return reportFailure(err)
			}

			fmt.Printf("Collected %d posts and %d comments\n", result.TotalPosts, result.TotalComments)
			fmt.Println("Analysis complete!")
			fmt.Printf("Report saved: %s\n", result.ReportPath)
			fmt.Printf("JSON export: %s\n", result.ExportPath)
			fmt.Println()
			fmt.Println(preview(result.Persona, 600))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Reddit profile URL (e.g. https://www.reddit.com/user/username/)")
	cmd.Flags().IntVar(&depth, "depth", 100, "number of posts/comments to analyze")
	cmd.Flags().StringVar(&model, "model", string(domain.DefaultModel), "AI model for analysis")
	cmd.Flags().StringVar(&output, "output", "output", "output directory for generated profiles")
	cmd.MarkFlagRequired("url")

	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		port   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive analysis dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			slog.SetDefault(logger)

			cfg := config.FromEnv()
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return reportFailure(err)
			}

			col, err := collector.New(cfg)
			if err != nil {
				return reportFailure(err)
			}
			logger.Info("collector initialized", "mode", cfg.CollectorMode)
			logger.Info("starting dashboard", "port", cfg.Port)

			return dashboard.StartServer(cfg, col, output, cfg.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default: PORT env or 8080)")
	cmd.Flags().StringVar(&output, "output", "output", "output directory for generated profiles")

	return cmd
}

// reportFailure attaches the operator hint for the failure kind, if any.
func reportFailure(err error) error {
	if hint := domain.Hint(domain.KindOf(err)); hint != "" {
		return fmt.Errorf("%w\n%s", err, hint)
	}
	return err
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
