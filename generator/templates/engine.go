// Package templates loads and renders the embedded artifact templates. An
// Engine parses every template once at construction and is read-only
// afterwards, so a single instance is safe for concurrent renders.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/domainforge/domainforge/internal/debug"
)

//go:embed templates
var templateFS embed.FS

// maxIncludeDepth bounds template inclusion so a self-including template
// fails with a RenderError instead of hanging.
const maxIncludeDepth = 8

// NotFoundError reports a render request for an unknown template id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.ID)
}

// RenderError reports a failure while executing a template body: an undefined
// reference, a syntax error surfacing at execution, or an inclusion chain
// deeper than the allowed bound.
type RenderError struct {
	ID  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("template %q render error: %v", e.ID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Engine is the template registry. Templates are keyed by their path under
// the templates directory without the .tmpl extension, e.g. "backend/model".
type Engine struct {
	templates map[string]*template.Template
}

// NewEngine parses every embedded template. Construct once and inject into
// generators; the engine holds no mutable state after this returns.
func NewEngine() (*Engine, error) {
	return NewEngineFromFS(templateFS, "templates")
}

// NewEngineFromFS parses templates from an arbitrary filesystem rooted at
// root. Used by tests and template development tooling; production code uses
// the embedded set.
func NewEngineFromFS(fsys fs.FS, root string) (*Engine, error) {
	e := &Engine{templates: make(map[string]*template.Template)}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".tmpl") {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", p, err)
		}

		id := strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ".tmpl")
		funcs := Funcs()
		// Placeholder so the body parses; rebound per render with the real
		// depth-tracking resolver.
		funcs["include"] = func(string, any) (string, error) { return "", nil }

		tmpl, err := template.New(path.Base(id)).Funcs(funcs).Option("missingkey=error").Parse(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", id, err)
		}
		e.templates[id] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	debug.Debug("Template engine initialized", "templates", len(e.templates))
	return e, nil
}

// IDs returns every registered template id.
func (e *Engine) IDs() []string {
	ids := make([]string, 0, len(e.templates))
	for id := range e.templates {
		ids = append(ids, id)
	}
	return ids
}

// Render executes the template against ctx and returns the rendered text.
func (e *Engine) Render(id string, ctx any) (string, error) {
	return e.render(id, ctx, 0)
}

func (e *Engine) render(id string, ctx any, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", &RenderError{ID: id, Err: fmt.Errorf("inclusion depth exceeds %d", maxIncludeDepth)}
	}

	tmpl, ok := e.templates[id]
	if !ok {
		return "", &NotFoundError{ID: id}
	}

	// Clone so the per-render include closure never touches the cached parse.
	cloned, err := tmpl.Clone()
	if err != nil {
		return "", &RenderError{ID: id, Err: err}
	}
	cloned.Funcs(template.FuncMap{
		"include": func(child string, childCtx any) (string, error) {
			return e.render(child, childCtx, depth+1)
		},
	})

	var buf strings.Builder
	if err := cloned.Execute(&buf, ctx); err != nil {
		return "", &RenderError{ID: id, Err: err}
	}
	return buf.String(), nil
}
