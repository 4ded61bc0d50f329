package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/domainforge/domainforge/cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a starter domain config",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip prompts and use defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	name := "my_app"
	domainType := "task_management"
	features := []string{"audit_log"}

	if !initYes {
		questions := []*survey.Question{
			{
				Name:     "name",
				Prompt:   &survey.Input{Message: "Domain name (identifier):", Default: name},
				Validate: survey.Required,
			},
			{
				Name: "domainType",
				Prompt: &survey.Select{
					Message: "Domain type:",
					Options: []string{"task_management", "e_commerce", "healthcare", "custom"},
					Default: domainType,
				},
			},
			{
				Name: "features",
				Prompt: &survey.MultiSelect{
					Message: "Features:",
					Options: []string{"audit_log", "file_uploads", "realtime", "export"},
					Default: features,
				},
			},
		}
		answers := struct {
			Name       string
			DomainType string
			Features   []string
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
		name = answers.Name
		domainType = answers.DomainType
		features = answers.Features
	}

	configPath := filepath.Join(dir, "domain.yaml")
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintWarning("Config already exists: %s, skipping", configPath)
		return nil
	}

	content := starterConfig(name, domainType, features)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	ui.PrintSuccess("Created %s", configPath)
	fmt.Println()
	ui.PrintSection("Next Steps")
	ui.PrintList([]string{
		"Edit domain.yaml to describe your entities",
		"Run: domainforge validate",
		"Run: domainforge generate",
	})
	return nil
}

func starterConfig(name, domainType string, features []string) string {
	out := fmt.Sprintf(`name: %s
title: %s
domain_type: %s
entities:
  - name: Task
    title: Task
    fields:
      - name: title
        type: string
        required: true
        indexed: true
        ui:
          list_visible: true
          detail_visible: true
          editable: true
          searchable: true
      - name: status
        type: enum
        required: true
        enum_values: [todo, in_progress, done]
        ui:
          list_visible: true
          detail_visible: true
          editable: true
      - name: due_date
        type: date
        ui:
          list_visible: true
          detail_visible: true
          editable: true
    permissions:
      admin: ["*"]
      member: [list, get, create, update]
navigation:
  - label: Tasks
    target_entity: Task
    icon: check-square
    order: 1
features:
`, name, name, domainType)
	for _, f := range features {
		out += fmt.Sprintf("  %s: true\n", f)
	}
	return out
}
