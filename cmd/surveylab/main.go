// Package main provides the surveylab binary, a CLI for analysing
// restaurant customer-satisfaction surveys.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/surveylab/pkg/analysis"
	"github.com/example/surveylab/pkg/render"
	"github.com/example/surveylab/pkg/report"
	"github.com/example/surveylab/pkg/stats"
	"github.com/example/surveylab/pkg/survey"
)

const (
	Version = "0.1.0"
	appName = "surveylab"
)

func main() {
	// .env is optional; flags and config files win over it.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Customer satisfaction survey analysis",
		Long: `Surveylab analyses restaurant customer-satisfaction surveys.

Given a CSV of responses (overall satisfaction plus food, service,
value-for-money and interior scores, grouped by store and gender) it
computes descriptive statistics, runs a t-test, a one-way ANOVA with
Tukey HSD post-hoc comparisons and an OLS driver regression, and writes
charts, a markdown report and an Excel workbook.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file path")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(analyzeCmd(&configPath, &verbose))
	cmd.AddCommand(describeCmd(&configPath, &verbose))
	cmd.AddCommand(plotCmd(&configPath, &verbose))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func analyzeCmd(configPath *string, verbose *bool) *cobra.Command {
	var (
		input    string
		out      string
		alpha    float64
		noCharts bool
		noExcel  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis battery",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			applyOverrides(&cfg, cmd, input, out, alpha)
			if noCharts {
				cfg.Charts = false
			}
			if noExcel {
				cfg.Excel = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := analysis.New(cfg, logger).Run(ctx)
			if err != nil {
				return err
			}

			p := report.NewPrinter(os.Stdout)
			p.PrintDescriptives(summary)
			p.PrintInference(summary)
			p.PrintRegression(summary)

			fmt.Printf("\nArtifacts written to %s\n", cfg.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Survey CSV path")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Significance level")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip chart rendering")
	cmd.Flags().BoolVar(&noExcel, "no-excel", false, "Skip the Excel workbook")
	return cmd
}

func describeCmd(configPath *string, verbose *bool) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print descriptive statistics without running the tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			applyOverrides(&cfg, cmd, input, "", 0)

			ds, err := survey.NewLoader(cfg.Schema, logger).Load(cfg.Input)
			if err != nil {
				return err
			}

			summary := &report.Summary{
				Quality: ds.Quality,
				Overall: stats.Describe(ds.Overall()),
				ByStore: stats.DescribeGroups(ds.OverallByStore()),
			}
			report.NewPrinter(os.Stdout).PrintDescriptives(summary)
			fmt.Printf("\n%d responses kept of %d read\n", ds.Quality.RowsKept, ds.Quality.RowsRead)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Survey CSV path")
	return cmd
}

func plotCmd(configPath *string, verbose *bool) *cobra.Command {
	var (
		input string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the survey charts only",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			applyOverrides(&cfg, cmd, input, out, 0)

			ds, err := survey.NewLoader(cfg.Schema, logger).Load(cfg.Input)
			if err != nil {
				return err
			}

			renderer, err := render.NewRenderer(cfg.OutputDir, logger)
			if err != nil {
				return err
			}
			if _, err := renderer.Histogram(ds.Overall(), "Overall satisfaction", "Score", "overall_hist.png"); err != nil {
				return err
			}
			if _, err := renderer.BoxPlot(ds.OverallByStore(), "Overall satisfaction by store", "Score", "store_boxplot.png"); err != nil {
				return err
			}

			names := []string{"overall"}
			columns := [][]float64{ds.Overall()}
			for _, driver := range survey.Drivers {
				names = append(names, string(driver))
				columns = append(columns, ds.Column(driver))
			}
			corr, err := stats.Correlations(names, columns)
			if err != nil {
				return err
			}
			if _, err := renderer.CorrelationHeatmap(corr, "Attribute correlations", "correlation_heatmap.png"); err != nil {
				return err
			}

			fmt.Printf("Charts written to %s\n", cfg.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Survey CSV path")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory")
	return cmd
}

// setup builds the run configuration and logger shared by all commands.
func setup(configPath string, verbose bool) (analysis.Config, *zap.Logger, error) {
	cfg := analysis.DefaultConfig()
	if configPath != "" {
		loaded, err := analysis.LoadConfig(configPath)
		if err != nil {
			return cfg, nil, err
		}
		cfg = loaded
	}

	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

// applyOverrides lets flags win over the config file.
func applyOverrides(cfg *analysis.Config, cmd *cobra.Command, input, out string, alpha float64) {
	if input != "" {
		cfg.Input = input
	}
	if out != "" {
		cfg.OutputDir = out
	}
	if cmd.Flags().Changed("alpha") && alpha > 0 {
		cfg.Alpha = alpha
	}
}
