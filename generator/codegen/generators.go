package codegen

import (
	"path"

	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/generator/templates"
	"github.com/domainforge/domainforge/internal/debug"
)

// Generator renders one artifact kind for one entity. Implementations are
// stateless between calls; failures are recorded on the returned result, not
// returned as errors, so one broken template never aborts a whole run.
type Generator interface {
	Kind() ArtifactKind
	// OutputPath is the artifact's path relative to the output root.
	OutputPath(entity *domain.EntityDefinition) string
	Generate(entity *domain.EntityDefinition, cfg *domain.DomainConfig) GenerationResult
}

// artifactSpec fixes the static properties of one artifact kind.
type artifactSpec struct {
	kind       ArtifactKind
	templateID string
	tree       string // "backend" or "frontend"
	filename   string
	comment    string // line-comment prefix for the generated-file header
}

var artifactSpecs = []artifactSpec{
	{KindModel, "backend/model", "backend", "model.py", "#"},
	{KindSchema, "backend/schema", "backend", "schema.py", "#"},
	{KindRoute, "backend/route", "backend", "routes.py", "#"},
	{KindService, "backend/service", "backend", "service.py", "#"},
	{KindTypes, "frontend/types", "frontend", "types.ts", "//"},
	{KindForm, "frontend/form", "frontend", "Form.tsx", "//"},
	{KindList, "frontend/list", "frontend", "List.tsx", "//"},
	{KindAPIClient, "frontend/apiclient", "frontend", "apiClient.ts", "//"},
}

// templateGenerator is the single Generator implementation: every artifact
// kind is one template plus its spec.
type templateGenerator struct {
	spec   artifactSpec
	engine *templates.Engine
}

// All returns the eight generators, backend kinds first, wired to the given
// engine.
func All(engine *templates.Engine) []Generator {
	gens := make([]Generator, 0, len(artifactSpecs))
	for _, spec := range artifactSpecs {
		gens = append(gens, &templateGenerator{spec: spec, engine: engine})
	}
	return gens
}

// ByKind returns the generator for one artifact kind, or nil.
func ByKind(engine *templates.Engine, kind ArtifactKind) Generator {
	for _, spec := range artifactSpecs {
		if spec.kind == kind {
			return &templateGenerator{spec: spec, engine: engine}
		}
	}
	return nil
}

func (g *templateGenerator) Kind() ArtifactKind { return g.spec.kind }

func (g *templateGenerator) OutputPath(entity *domain.EntityDefinition) string {
	return path.Join(g.spec.tree, templates.ToSnakeCase(entity.Name), g.spec.filename)
}

func (g *templateGenerator) Generate(entity *domain.EntityDefinition, cfg *domain.DomainConfig) GenerationResult {
	result := GenerationResult{
		EntityName:   entity.Name,
		ArtifactKind: g.spec.kind,
		OutputPath:   g.OutputPath(entity),
	}

	ctx, err := NewRenderContext(entity, cfg, g.spec.comment)
	if err != nil {
		result.ErrorMessage = err.Error()
		result.ErrorKind = ErrorKindRender
		return result
	}

	rendered, err := g.engine.Render(g.spec.templateID, ctx)
	if err != nil {
		debug.Debug("Artifact render failed", "entity", entity.Name, "kind", g.spec.kind, "error", err)
		result.ErrorMessage = err.Error()
		result.ErrorKind = ErrorKindRender
		return result
	}

	result.Success = true
	result.Content = []byte(rendered)
	result.Bytes = len(result.Content)
	return result
}
