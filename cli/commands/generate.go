package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	cliconfig "github.com/domainforge/domainforge/cli/internal/config"
	"github.com/domainforge/domainforge/cli/internal/ui"
	"github.com/domainforge/domainforge/cli/internal/watch"
	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/generator"
	"github.com/domainforge/domainforge/generator/history"
	"github.com/domainforge/domainforge/generator/templates"
)

var generateCmd = &cobra.Command{
	Use:   "generate [config-path]",
	Short: "Generate application code from a domain config",
	Long: `Generate backend and frontend source artifacts from a domain configuration.

This command will:
- Parse and validate the domain config (YAML or JSON)
- Render 8 artifacts per entity (model, schema, routes, service,
  types, form, list, API client)
- Write the output tree and a generation-report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateOutput  string
	generateWatch   bool
	generateWorkers int
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default from CLI config)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch the config file and regenerate on change")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "Render parallelism (default: number of CPUs)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cliCfg, err := cliconfig.Load()
	if err != nil {
		return err
	}
	configPath := resolveConfigPath(cliCfg, args)
	outputRoot := generateOutput
	if outputRoot == "" {
		outputRoot = cliCfg.OutputPath
	}
	workers := generateWorkers
	if workers == 0 {
		workers = cliCfg.Workers
	}

	runOnce := func() error {
		return generateOnce(cliCfg, configPath, outputRoot, workers)
	}

	if generateWatch {
		return runGenerateWatch(configPath, runOnce)
	}

	ui.PrintHeader("domainforge", "Generate")
	return runOnce()
}

func generateOnce(cliCfg *cliconfig.Config, configPath, outputRoot string, workers int) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	cfg, err := domain.LoadConfigFile(afero.NewOsFs(), configPath)
	if err != nil {
		return err
	}

	engine, err := templates.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spinner, _ := ui.PrintSpinner(fmt.Sprintf("Generating %s...", cfg.Name))
	orch := generator.New(engine, generator.WithWorkers(workers))
	summary, err := orch.Generate(ctx, cfg, outputRoot)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		if invalid, ok := err.(*generator.ConfigInvalidError); ok {
			ui.PrintError("Config validation failed:")
			for _, v := range invalid.Errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", v.Error())
			}
			return fmt.Errorf("cannot generate from an invalid config")
		}
		return err
	}

	recordRun(cliCfg, summary, outputRoot)
	printSummary(summary, outputRoot)

	if summary.FailureCount > 0 {
		return fmt.Errorf("%d of %d artifacts failed", summary.FailureCount, len(summary.Results))
	}
	return nil
}

func printSummary(summary *generator.GenerationSummary, outputRoot string) {
	absPath, _ := filepath.Abs(outputRoot)
	total := len(summary.Results)

	if summary.Cancelled {
		ui.PrintWarning("Run cancelled; partial output at %s", absPath)
	} else {
		ui.PrintSuccess("Generated %d/%d artifacts at %s", summary.TotalFilesWritten, total, absPath)
	}
	fmt.Println()

	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		status := "ok"
		detail := r.OutputPath
		if !r.Success {
			status = "FAILED (" + r.ErrorKind + ")"
			detail = r.ErrorMessage
		}
		rows = append(rows, []string{r.EntityName, string(r.ArtifactKind), status, detail})
	}
	ui.PrintTable([]string{"Entity", "Artifact", "Status", "Detail"}, rows)
	fmt.Println()
	ui.PrintInfo("Report: %s", filepath.Join(absPath, generator.ReportFilename))
}

func recordRun(cliCfg *cliconfig.Config, summary *generator.GenerationSummary, outputRoot string) {
	// Ledger failures never fail the run; the artifacts are already written.
	if err := cliconfig.EnsureHistoryDir(cliCfg); err != nil {
		ui.PrintWarning("Could not prepare run ledger: %v", err)
		return
	}
	ledger, err := history.Open(cliCfg.HistoryDB)
	if err != nil {
		ui.PrintWarning("Could not open run ledger: %v", err)
		return
	}
	defer ledger.Close()

	rec := &history.RunRecord{
		RunID:        summary.RunID,
		DomainName:   summary.DomainName,
		StartedAt:    summary.StartedAt,
		FinishedAt:   summary.FinishedAt,
		FilesWritten: summary.TotalFilesWritten,
		BytesWritten: summary.TotalBytesWritten,
		FailureCount: summary.FailureCount,
		Cancelled:    summary.Cancelled,
		OutputRoot:   outputRoot,
	}
	if err := ledger.Record(context.Background(), rec); err != nil {
		ui.PrintWarning("Could not record run: %v", err)
	}
}

func runGenerateWatch(configPath string, runOnce func() error) error {
	ui.PrintHeader("domainforge", "Watch Mode")

	if err := runOnce(); err != nil {
		ui.PrintError("%v", err)
	}

	watcher, err := watch.NewWatcher(configPath, func() error {
		ui.PrintInfo("Config changed, regenerating...")
		if err := runOnce(); err != nil {
			ui.PrintError("%v", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()
	watcher.Start()

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", configPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ui.PrintInfo("\nStopping watch mode...")
	return nil
}
