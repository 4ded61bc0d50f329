package codegen

import (
	"fmt"

	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/generator/templates"
)

// RelationView is a relationship prepared for template consumption: the
// cardinality is unpacked into the flags the templates branch on.
type RelationView struct {
	Name         string
	TargetEntity string
	Kind         domain.RelationKind
	// HasForeignKey is set for the kinds that place a foreign-key column on
	// this entity's own table.
	HasForeignKey bool
	// Secondary names the association table for many_to_many relations.
	Secondary string
	UseList   bool
	Cascade   bool
}

// EnumView is an enum field with its derived companion type name.
type EnumView struct {
	Field    domain.EntityField
	TypeName string
	Values   []string
}

// RenderContext is the data handed to every artifact template. Fields not
// meaningful for a given template are simply unused by it.
type RenderContext struct {
	Domain    *domain.DomainConfig
	Entity    *domain.EntityDefinition
	Header    map[string]any
	Enums     []EnumView
	Relations []RelationView
	Rules     []*domain.Rule
	Contract  RouteContract
	Nav       []domain.NavigationItem
}

// NewRenderContext assembles the render context for one entity. Rule parse
// errors are surfaced so a broken rule fails that entity's artifacts instead
// of panicking mid-render; validated configs never hit this path.
func NewRenderContext(entity *domain.EntityDefinition, cfg *domain.DomainConfig, comment string) (*RenderContext, error) {
	rules, err := entity.ParsedRules()
	if err != nil {
		return nil, err
	}

	ctx := &RenderContext{
		Domain: cfg,
		Entity: entity,
		Header: map[string]any{
			"Comment": comment,
			"Domain":  cfg.Name,
			"Entity":  entity.Name,
		},
		Rules:    rules,
		Contract: NewRouteContract(entity),
		Nav:      cfg.Navigation,
	}

	for _, f := range entity.Fields {
		if f.Type == domain.FieldEnum {
			ctx.Enums = append(ctx.Enums, EnumView{
				Field:    f,
				TypeName: templates.ToPascalCase(entity.Name) + templates.ToPascalCase(f.Name),
				Values:   f.EnumValues,
			})
		}
	}

	for _, rel := range entity.Relationships {
		view := RelationView{
			Name:         rel.Name,
			TargetEntity: rel.TargetEntity,
			Kind:         rel.Kind,
			Cascade:      rel.CascadeDelete,
		}
		switch rel.Kind {
		case domain.ManyToOne, domain.OneToOne:
			view.HasForeignKey = true
		case domain.OneToMany:
			view.UseList = true
		case domain.ManyToMany:
			view.UseList = true
			view.Secondary = fmt.Sprintf("%s_%s_association",
				templates.ToSnakeCase(entity.Name), templates.ToSnakeCase(rel.TargetEntity))
		}
		ctx.Relations = append(ctx.Relations, view)
	}

	return ctx, nil
}

// EnumTypeName returns the companion type name for an enum field of the
// context's entity.
func (c *RenderContext) EnumTypeName(field domain.EntityField) string {
	return templates.ToPascalCase(c.Entity.Name) + templates.ToPascalCase(field.Name)
}
