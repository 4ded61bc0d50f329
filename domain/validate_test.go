package domain

import (
	"strings"
	"testing"
)

func validConfig() *DomainConfig {
	return &DomainConfig{
		Name: "tasker",
		Entities: []EntityDefinition{
			{
				Name: "Task",
				Fields: []EntityField{
					{Name: "title", Type: FieldString, Required: true},
					{Name: "status", Type: FieldEnum, EnumValues: []string{"todo", "done"}},
				},
				Relationships: []RelationshipSpec{
					{Name: "project", TargetEntity: "Project", Kind: ManyToOne},
				},
			},
			{
				Name: "Project",
				Fields: []EntityField{
					{Name: "name", Type: FieldString, Required: true},
				},
			},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if errs := Validate(validConfig()); len(errs) != 0 {
		t.Fatalf("Validate = %v, want none", errs)
	}
}

// Validation must collect every independent violation in one pass rather
// than stopping at the first.
func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	// 1: duplicate entity name
	cfg.Entities = append(cfg.Entities, EntityDefinition{Name: "Task", Fields: []EntityField{{Name: "x", Type: FieldString}}})
	// 2: duplicate field name
	cfg.Entities[1].Fields = append(cfg.Entities[1].Fields, EntityField{Name: "name", Type: FieldText})
	// 3: enum without values
	cfg.Entities[1].Fields = append(cfg.Entities[1].Fields, EntityField{Name: "kind", Type: FieldEnum})
	// 4: dangling relationship target
	cfg.Entities[1].Relationships = append(cfg.Entities[1].Relationships, RelationshipSpec{Name: "owner", TargetEntity: "Ghost", Kind: ManyToOne})

	errs := Validate(cfg)
	if len(errs) != 4 {
		t.Fatalf("Validate returned %d errors, want 4: %v", len(errs), errs)
	}

	wantFragments := []string{
		"duplicate entity name",
		"duplicate field name",
		"enum field must declare enum_values",
		`targets unknown entity "Ghost"`,
	}
	for _, frag := range wantFragments {
		found := false
		for _, e := range errs {
			if strings.Contains(e.Error(), frag) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no error containing %q in %v", frag, errs)
		}
	}
}

func TestValidateIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		ident string
		valid bool
	}{
		{"simple", "Task", true},
		{"snake", "work_item", true},
		{"leading digit", "2task", false},
		{"hyphen", "work-item", false},
		{"path separator", "a/b", false},
		{"space", "work item", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &DomainConfig{
				Name: "app",
				Entities: []EntityDefinition{
					{Name: tt.ident, Fields: []EntityField{{Name: "f", Type: FieldString}}},
				},
			}
			errs := Validate(cfg)
			if tt.valid && len(errs) != 0 {
				t.Errorf("Validate(%q) = %v, want none", tt.ident, errs)
			}
			if !tt.valid && len(errs) == 0 {
				t.Errorf("Validate(%q) accepted invalid identifier", tt.ident)
			}
		})
	}
}

func TestValidateSelfReferenceLegal(t *testing.T) {
	cfg := &DomainConfig{
		Name: "app",
		Entities: []EntityDefinition{
			{
				Name:   "Category",
				Fields: []EntityField{{Name: "name", Type: FieldString}},
				Relationships: []RelationshipSpec{
					{Name: "parent", TargetEntity: "Category", Kind: ManyToOne},
				},
			},
		},
	}
	if errs := Validate(cfg); len(errs) != 0 {
		t.Fatalf("self-reference rejected: %v", errs)
	}
}

func TestValidateEmptyConfig(t *testing.T) {
	errs := Validate(&DomainConfig{})
	if len(errs) != 2 {
		t.Fatalf("Validate(empty) = %v, want name + entities errors", errs)
	}
}

func TestValidateRules(t *testing.T) {
	cfg := validConfig()
	cfg.Entities[0].Rules = []string{`when status == "done" then require title`}
	if errs := Validate(cfg); len(errs) != 0 {
		t.Fatalf("valid rule rejected: %v", errs)
	}

	cfg.Entities[0].Rules = []string{`when bogus == "x" then require title`}
	if errs := Validate(cfg); len(errs) != 1 {
		t.Fatalf("rule with unknown field: got %v, want 1 error", errs)
	}

	cfg.Entities[0].Rules = []string{`this is not a rule`}
	if errs := Validate(cfg); len(errs) != 1 {
		t.Fatalf("malformed rule: got %v, want 1 error", errs)
	}
}
