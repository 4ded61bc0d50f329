package commands

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	cliconfig "github.com/domainforge/domainforge/cli/internal/config"
	"github.com/domainforge/domainforge/cli/internal/ui"
	"github.com/domainforge/domainforge/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config-path]",
	Short: "Validate a domain config without generating",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cliCfg, err := cliconfig.Load()
	if err != nil {
		return err
	}
	configPath := resolveConfigPath(cliCfg, args)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	cfg, err := domain.LoadConfigFile(afero.NewOsFs(), configPath)
	if err != nil {
		return err
	}

	violations := domain.Validate(cfg)
	if len(violations) == 0 {
		ui.PrintSuccess("%s is valid (%d entities)", configPath, len(cfg.Entities))
		return nil
	}

	ui.PrintError("%s has %d problem(s):", configPath, len(violations))
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{v.Entity, v.Field, v.Message})
	}
	ui.PrintTable([]string{"Entity", "Field", "Problem"}, rows)
	return fmt.Errorf("config is invalid")
}
