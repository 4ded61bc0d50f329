package domain

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

const sampleYAML = `
name: tasker
title: Tasker
domain_type: task_management
entities:
  - name: Task
    title: Task
    fields:
      - name: title
        type: string
        required: true
        ui:
          list_visible: true
          editable: true
          searchable: true
      - name: status
        type: enum
        required: true
        enum_values: [todo, done]
        ui:
          list_visible: true
          editable: true
    permissions:
      admin: ["*"]
      member: [list, get]
navigation:
  - label: Tasks
    target_entity: Task
    icon: check
    order: 1
features:
  audit_log: true
`

func TestLoadConfigYAML(t *testing.T) {
	cfg, err := LoadConfig([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Name != "tasker" {
		t.Errorf("Name = %q, want tasker", cfg.Name)
	}
	if cfg.DomainType != DomainTaskManagement {
		t.Errorf("DomainType = %q, want task_management", cfg.DomainType)
	}
	if len(cfg.Entities) != 1 {
		t.Fatalf("len(Entities) = %d, want 1", len(cfg.Entities))
	}

	task := cfg.Entity("Task")
	if task == nil {
		t.Fatal("Entity(Task) = nil")
	}
	if got := len(task.Fields); got != 2 {
		t.Fatalf("len(Fields) = %d, want 2", got)
	}
	status := task.Field("status")
	if status == nil || status.Type != FieldEnum {
		t.Fatalf("status field = %+v, want enum", status)
	}
	if len(status.EnumValues) != 2 {
		t.Errorf("len(EnumValues) = %d, want 2", len(status.EnumValues))
	}
	if !task.Field("title").UI.Searchable {
		t.Error("title should be searchable")
	}
	if ops := task.Permissions["member"]; len(ops) != 2 {
		t.Errorf("member permissions = %v, want 2 ops", ops)
	}
	if len(cfg.Navigation) != 1 || cfg.Navigation[0].TargetEntity != "Task" {
		t.Errorf("Navigation = %+v", cfg.Navigation)
	}
	if !cfg.Features["audit_log"] {
		t.Error("audit_log feature should be enabled")
	}
}

func TestLoadConfigJSON(t *testing.T) {
	data := []byte(`{
		"name": "shop",
		"title": "Shop",
		"domain_type": "e_commerce",
		"entities": [
			{"name": "Product", "title": "Product", "fields": [
				{"name": "price", "type": "decimal", "required": true}
			]}
		]
	}`)

	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "shop" {
		t.Errorf("Name = %q, want shop", cfg.Name)
	}
	if f := cfg.Entity("Product").Field("price"); f == nil || f.Type != FieldDecimal {
		t.Errorf("price field = %+v, want decimal", f)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := LoadConfig([]byte("name: [unbalanced"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
}

func TestLoadConfigToolVersionGate(t *testing.T) {
	old := ToolVersion
	ToolVersion = "0.1.0"
	defer func() { ToolVersion = old }()

	tests := []struct {
		name    string
		min     string
		wantErr bool
	}{
		{"older requirement", "0.0.9", false},
		{"exact requirement", "0.1.0", false},
		{"newer requirement", "9.0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("name: app\nmin_tool_version: \"" + tt.min + "\"\nentities:\n  - name: A\n    fields: []\n")
			_, err := LoadConfig(data)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cfg/domain.yaml", []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(fs, "/cfg/domain.yaml")
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Name != "tasker" {
		t.Errorf("Name = %q, want tasker", cfg.Name)
	}

	if _, err := LoadConfigFile(fs, "/cfg/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
