// Package codegen contains the per-artifact generators. Each generator turns
// one entity plus the global domain context into one rendered source artifact
// through the template engine. Generators are stateless between calls and
// share nothing, so any number of them may run concurrently.
package codegen

// ArtifactKind identifies one of the eight generated artifact types.
type ArtifactKind string

const (
	KindModel     ArtifactKind = "model"
	KindSchema    ArtifactKind = "schema"
	KindRoute     ArtifactKind = "route"
	KindService   ArtifactKind = "service"
	KindTypes     ArtifactKind = "types"
	KindForm      ArtifactKind = "form"
	KindList      ArtifactKind = "list"
	KindAPIClient ArtifactKind = "apiClient"
)

// BackendKinds and FrontendKinds list the artifact kinds in generation order.
var (
	BackendKinds  = []ArtifactKind{KindModel, KindSchema, KindRoute, KindService}
	FrontendKinds = []ArtifactKind{KindTypes, KindForm, KindList, KindAPIClient}
)

// Error kinds recorded on failed results. A render failure points at the
// config or a template; a write failure points at the environment.
const (
	ErrorKindRender = "render"
	ErrorKindWrite  = "write"
)

// GenerationResult records the outcome of one (entity, artifact kind) pair.
// It is created by a single generator invocation and immutable once returned.
// Content carries the rendered text to the orchestrator and is not part of
// the serialized report.
type GenerationResult struct {
	EntityName   string       `json:"entity_name"`
	ArtifactKind ArtifactKind `json:"artifact_kind"`
	Success      bool         `json:"success"`
	OutputPath   string       `json:"output_path"`
	Bytes        int          `json:"rendered_bytes"`
	ErrorMessage string       `json:"error,omitempty"`
	ErrorKind    string       `json:"error_kind,omitempty"`

	Content []byte `json:"-"`
}
