package domain

import (
	"fmt"
	"regexp"

	"github.com/domainforge/domainforge/internal/debug"
)

// ValidationError is one structural rule violation found in a parsed config.
// Entity and Field locate the violation when applicable.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	switch {
	case e.Entity != "" && e.Field != "":
		return fmt.Sprintf("entity %q, field %q: %s", e.Entity, e.Field, e.Message)
	case e.Entity != "":
		return fmt.Sprintf("entity %q: %s", e.Entity, e.Message)
	}
	return e.Message
}

// identifierPattern must be safe as a class name, route segment and file name
// in every target language.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate checks every structural invariant of the config and collects all
// violations rather than stopping at the first, so a user sees every problem
// in one pass. A nil result means the config is structurally valid. Pure; no
// side effects.
func Validate(cfg *DomainConfig) []ValidationError {
	var errs []ValidationError

	if cfg.Name == "" {
		errs = append(errs, ValidationError{Message: "domain name is required"})
	} else if !identifierPattern.MatchString(cfg.Name) {
		errs = append(errs, ValidationError{Message: fmt.Sprintf("domain name %q is not a valid identifier", cfg.Name)})
	}
	if len(cfg.Entities) == 0 {
		errs = append(errs, ValidationError{Message: "at least one entity is required"})
	}

	seenEntities := make(map[string]bool, len(cfg.Entities))
	for i := range cfg.Entities {
		entity := &cfg.Entities[i]
		if seenEntities[entity.Name] {
			errs = append(errs, ValidationError{Entity: entity.Name, Message: "duplicate entity name"})
		}
		seenEntities[entity.Name] = true
		errs = append(errs, validateEntity(cfg, entity)...)
	}

	debug.Debug("Config validated", "domain", cfg.Name, "violations", len(errs))
	return errs
}

func validateEntity(cfg *DomainConfig, entity *EntityDefinition) []ValidationError {
	var errs []ValidationError

	if !identifierPattern.MatchString(entity.Name) {
		errs = append(errs, ValidationError{Entity: entity.Name, Message: fmt.Sprintf("entity name %q is not a valid identifier", entity.Name)})
	}

	seenFields := make(map[string]bool, len(entity.Fields))
	for _, f := range entity.Fields {
		if seenFields[f.Name] {
			errs = append(errs, ValidationError{Entity: entity.Name, Field: f.Name, Message: "duplicate field name"})
		}
		seenFields[f.Name] = true

		if !identifierPattern.MatchString(f.Name) {
			errs = append(errs, ValidationError{Entity: entity.Name, Field: f.Name, Message: fmt.Sprintf("field name %q is not a valid identifier", f.Name)})
		}
		if !f.Type.Valid() {
			errs = append(errs, ValidationError{Entity: entity.Name, Field: f.Name, Message: fmt.Sprintf("unknown field type %q", f.Type)})
		}
		if f.Type == FieldEnum && len(f.EnumValues) == 0 {
			errs = append(errs, ValidationError{Entity: entity.Name, Field: f.Name, Message: "enum field must declare enum_values"})
		}
		if f.Type != FieldEnum && len(f.EnumValues) > 0 {
			errs = append(errs, ValidationError{Entity: entity.Name, Field: f.Name, Message: fmt.Sprintf("enum_values is only valid for enum fields, not %q", f.Type)})
		}
	}

	for _, rel := range entity.Relationships {
		if !identifierPattern.MatchString(rel.Name) {
			errs = append(errs, ValidationError{Entity: entity.Name, Message: fmt.Sprintf("relationship name %q is not a valid identifier", rel.Name)})
		}
		if !rel.Kind.Valid() {
			errs = append(errs, ValidationError{Entity: entity.Name, Message: fmt.Sprintf("relationship %q has unknown kind %q", rel.Name, rel.Kind)})
		}
		// Self-references and cycles are legal; only dangling targets are not.
		if cfg.Entity(rel.TargetEntity) == nil {
			errs = append(errs, ValidationError{Entity: entity.Name, Message: fmt.Sprintf("relationship %q targets unknown entity %q", rel.Name, rel.TargetEntity)})
		}
	}

	for _, src := range entity.Rules {
		rule, err := ParseRule(src)
		if err != nil {
			errs = append(errs, ValidationError{Entity: entity.Name, Message: fmt.Sprintf("invalid rule %q: %v", src, err)})
			continue
		}
		for _, name := range []string{rule.When.Field, rule.Then.Field} {
			if entity.Field(name) == nil {
				errs = append(errs, ValidationError{Entity: entity.Name, Message: fmt.Sprintf("rule %q references unknown field %q", src, name)})
			}
		}
	}

	return errs
}
