// Package commands implements the domainforge CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/domainforge/domainforge/cli/internal/ui"
	"github.com/domainforge/domainforge/cli/internal/version"
	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/internal/debug"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "domainforge",
	Short: "Generate a full application from a declarative domain config",
	Long: `domainforge turns a declarative domain configuration (entities, fields,
relationships, navigation, business rules) into a complete set of backend
and frontend source artifacts: models, validation schemas, CRUD routes,
service layers, UI types, forms, list views and API clients.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.Init(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	domain.ToolVersion = version.Version
}

// Execute is the main entry point for the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}
