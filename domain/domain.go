// Package domain defines the in-memory model of a domain configuration:
// entities, fields, relationships, navigation and feature flags. The model
// is pure data; behavior is limited to loading and validation.
package domain

// FieldType is the abstract type of an entity field. Generators map it to a
// concrete type in each target representation through the type tables.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldText     FieldType = "text"
	FieldInteger  FieldType = "integer"
	FieldDecimal  FieldType = "decimal"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
	FieldJSON     FieldType = "json"
	FieldFile     FieldType = "file"
	FieldImage    FieldType = "image"
	FieldEnum     FieldType = "enum"
)

// FieldTypes lists every valid field type in declaration order.
var FieldTypes = []FieldType{
	FieldString, FieldText, FieldInteger, FieldDecimal, FieldBoolean,
	FieldDate, FieldDateTime, FieldEmail, FieldURL, FieldJSON,
	FieldFile, FieldImage, FieldEnum,
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	for _, k := range FieldTypes {
		if t == k {
			return true
		}
	}
	return false
}

// RelationKind is the cardinality of a relationship between two entities.
type RelationKind string

const (
	OneToMany  RelationKind = "one_to_many"
	ManyToOne  RelationKind = "many_to_one"
	ManyToMany RelationKind = "many_to_many"
	OneToOne   RelationKind = "one_to_one"
)

// Valid reports whether k is one of the known relationship kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case OneToMany, ManyToOne, ManyToMany, OneToOne:
		return true
	}
	return false
}

// DomainType classifies the business domain a configuration describes. It is
// advisory; generation treats all domain types identically.
type DomainType string

const (
	DomainTaskManagement DomainType = "task_management"
	DomainECommerce      DomainType = "e_commerce"
	DomainHealthcare     DomainType = "healthcare"
	DomainCustom         DomainType = "custom"
)

// UIHints carries the per-field presentation flags consumed by the frontend
// generators.
type UIHints struct {
	ListVisible   bool `yaml:"list_visible" json:"list_visible"`
	DetailVisible bool `yaml:"detail_visible" json:"detail_visible"`
	Editable      bool `yaml:"editable" json:"editable"`
	Searchable    bool `yaml:"searchable" json:"searchable"`
}

// EntityField is one named, typed attribute of an entity.
type EntityField struct {
	Name       string    `yaml:"name" json:"name"`
	Type       FieldType `yaml:"type" json:"type"`
	Required   bool      `yaml:"required" json:"required"`
	Unique     bool      `yaml:"unique" json:"unique"`
	Indexed    bool      `yaml:"indexed" json:"indexed"`
	EnumValues []string  `yaml:"enum_values,omitempty" json:"enum_values,omitempty"`
	UI         UIHints   `yaml:"ui" json:"ui"`
}

// RelationshipSpec is a named association between two entities. The target is
// referenced by name only, so cyclic and self-referential graphs are legal.
type RelationshipSpec struct {
	Name          string       `yaml:"name" json:"name"`
	TargetEntity  string       `yaml:"target_entity" json:"target_entity"`
	Kind          RelationKind `yaml:"kind" json:"kind"`
	CascadeDelete bool         `yaml:"cascade_delete" json:"cascade_delete"`
}

// EntityDefinition describes one logical data type within a domain. The entity
// name drives all derived naming: table name, route path, component name.
type EntityDefinition struct {
	Name          string              `yaml:"name" json:"name"`
	Title         string              `yaml:"title" json:"title"`
	Fields        []EntityField       `yaml:"fields" json:"fields"`
	Relationships []RelationshipSpec  `yaml:"relationships,omitempty" json:"relationships,omitempty"`
	Permissions   map[string][]string `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	Rules         []string            `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Field returns the field with the given name, or nil.
func (e *EntityDefinition) Field(name string) *EntityField {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

// SearchableFields returns the fields flagged searchable, in declaration order.
func (e *EntityDefinition) SearchableFields() []EntityField {
	var out []EntityField
	for _, f := range e.Fields {
		if f.UI.Searchable {
			out = append(out, f)
		}
	}
	return out
}

// NavigationItem is a purely descriptive menu entry consumed by the frontend
// generators.
type NavigationItem struct {
	Label        string `yaml:"label" json:"label"`
	TargetEntity string `yaml:"target_entity" json:"target_entity"`
	Icon         string `yaml:"icon" json:"icon"`
	Order        int    `yaml:"order" json:"order"`
}

// DomainConfig is the complete declarative description of a business domain,
// as supplied to a generation run. Immutable for the duration of a run.
type DomainConfig struct {
	Name           string           `yaml:"name" json:"name"`
	Title          string           `yaml:"title" json:"title"`
	DomainType     DomainType       `yaml:"domain_type" json:"domain_type"`
	MinToolVersion string           `yaml:"min_tool_version,omitempty" json:"min_tool_version,omitempty"`
	Entities       []EntityDefinition `yaml:"entities" json:"entities"`
	Navigation     []NavigationItem `yaml:"navigation,omitempty" json:"navigation,omitempty"`
	Features       map[string]bool  `yaml:"features,omitempty" json:"features,omitempty"`
}

// Entity returns the entity with the given name, or nil.
func (c *DomainConfig) Entity(name string) *EntityDefinition {
	for i := range c.Entities {
		if c.Entities[i].Name == name {
			return &c.Entities[i]
		}
	}
	return nil
}
