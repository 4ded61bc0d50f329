package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cliconfig "github.com/domainforge/domainforge/cli/internal/config"
	"github.com/domainforge/domainforge/cli/internal/ui"
	"github.com/domainforge/domainforge/generator/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past generation runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cliCfg, err := cliconfig.Load()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cliCfg.HistoryDB); os.IsNotExist(err) {
		ui.PrintInfo("No runs recorded yet")
		return nil
	}

	ledger, err := history.Open(cliCfg.HistoryDB)
	if err != nil {
		return err
	}
	defer ledger.Close()

	records, err := ledger.List(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.PrintInfo("No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		status := "ok"
		if rec.Cancelled {
			status = "cancelled"
		} else if rec.FailureCount > 0 {
			status = fmt.Sprintf("%d failed", rec.FailureCount)
		}
		rows = append(rows, []string{
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.DomainName,
			fmt.Sprintf("%d", rec.FilesWritten),
			status,
			rec.OutputRoot,
		})
	}
	ui.PrintTable([]string{"Started", "Domain", "Files", "Status", "Output"}, rows)
	return nil
}
