package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domainforge/domainforge/cli/internal/ui"
	"github.com/domainforge/domainforge/generator"
)

var reportCmd = &cobra.Command{
	Use:   "report <output-root>",
	Short: "Show the generation report for an output tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	reportPath := filepath.Join(args[0], generator.ReportFilename)
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	var summary generator.GenerationSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return fmt.Errorf("failed to parse report: %w", err)
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# Generation Report: %s\n\n", summary.DomainName)
	fmt.Fprintf(&md, "- Started: %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&md, "- Finished: %s\n", summary.FinishedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&md, "- Files written: **%d** (%d bytes)\n", summary.TotalFilesWritten, summary.TotalBytesWritten)
	fmt.Fprintf(&md, "- Failures: **%d**\n", summary.FailureCount)
	if summary.Cancelled {
		md.WriteString("- **Run was cancelled before completion**\n")
	}
	ui.PrintMarkdown(md.String())

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
	return nil
}
