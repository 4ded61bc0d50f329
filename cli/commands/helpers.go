package commands

import (
	cliconfig "github.com/domainforge/domainforge/cli/internal/config"
)

// resolveConfigPath picks the domain config path: positional argument first,
// then the CLI config default.
func resolveConfigPath(cfg *cliconfig.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.ConfigPath
}
