package codegen

import (
	"strings"
	"testing"

	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/generator/templates"
)

func testEngine(t *testing.T) *templates.Engine {
	t.Helper()
	engine, err := templates.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func taskConfig() *domain.DomainConfig {
	return &domain.DomainConfig{
		Name: "tasker",
		Entities: []domain.EntityDefinition{
			{
				Name:  "Task",
				Title: "Task",
				Fields: []domain.EntityField{
					{Name: "title", Type: domain.FieldString, Required: true, Indexed: true,
						UI: domain.UIHints{ListVisible: true, Editable: true, Searchable: true}},
					{Name: "status", Type: domain.FieldEnum, Required: true, EnumValues: []string{"todo", "done"},
						UI: domain.UIHints{ListVisible: true, Editable: true}},
					{Name: "estimate", Type: domain.FieldDecimal,
						UI: domain.UIHints{DetailVisible: true, Editable: true}},
				},
				Permissions: map[string][]string{
					"admin":  {"*"},
					"member": {"list", "get", "create"},
				},
			},
		},
	}
}

func render(t *testing.T, kind ArtifactKind, cfg *domain.DomainConfig) GenerationResult {
	t.Helper()
	gen := ByKind(testEngine(t), kind)
	if gen == nil {
		t.Fatalf("no generator for %q", kind)
	}
	result := gen.Generate(&cfg.Entities[0], cfg)
	if !result.Success {
		t.Fatalf("%s generation failed: %s", kind, result.ErrorMessage)
	}
	return result
}

func TestOutputPaths(t *testing.T) {
	engine := testEngine(t)
	entity := &domain.EntityDefinition{Name: "WorkItem"}

	tests := []struct {
		kind ArtifactKind
		want string
	}{
		{KindModel, "backend/work_item/model.py"},
		{KindSchema, "backend/work_item/schema.py"},
		{KindRoute, "backend/work_item/routes.py"},
		{KindService, "backend/work_item/service.py"},
		{KindTypes, "frontend/work_item/types.ts"},
		{KindForm, "frontend/work_item/Form.tsx"},
		{KindList, "frontend/work_item/List.tsx"},
		{KindAPIClient, "frontend/work_item/apiClient.ts"},
	}
	for _, tt := range tests {
		if got := ByKind(engine, tt.kind).OutputPath(entity); got != tt.want {
			t.Errorf("OutputPath(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// The backend model and frontend types artifacts must both carry the mapped
// type for every field type in the tables.
func TestTypeMappingRoundTrip(t *testing.T) {
	fields := make([]domain.EntityField, 0, len(domain.FieldTypes))
	for _, ft := range domain.FieldTypes {
		f := domain.EntityField{Name: "f_" + string(ft), Type: ft}
		if ft == domain.FieldEnum {
			f.EnumValues = []string{"a", "b"}
		}
		fields = append(fields, f)
	}
	cfg := &domain.DomainConfig{
		Name:     "app",
		Entities: []domain.EntityDefinition{{Name: "Thing", Fields: fields}},
	}

	model := string(render(t, KindModel, cfg).Content)
	types := string(render(t, KindTypes, cfg).Content)

	for _, ft := range domain.FieldTypes {
		if ft == domain.FieldEnum {
			continue
		}
		if want := "Column(" + templates.ColumnType(ft); !strings.Contains(model, want) {
			t.Errorf("model artifact missing %q for field type %s", want, ft)
		}
		tsWant := "f" + templates.ToPascalCase(string(ft)) + ": " + templates.TypeScriptType(ft)
		tsWantOptional := "f" + templates.ToPascalCase(string(ft)) + "?: " + templates.TypeScriptType(ft)
		if !strings.Contains(types, tsWant) && !strings.Contains(types, tsWantOptional) {
			t.Errorf("types artifact missing mapping for field type %s (want %q)", ft, tsWantOptional)
		}
	}
}

func TestModelEnumCompanionType(t *testing.T) {
	model := string(render(t, KindModel, taskConfig()).Content)

	if !strings.Contains(model, "class TaskStatus(str, enum.Enum):") {
		t.Error("model missing companion enum type")
	}
	if !strings.Contains(model, `TODO = "todo"`) || !strings.Contains(model, `DONE = "done"`) {
		t.Error("model enum missing members")
	}
	if !strings.Contains(model, "status = Column(Enum(TaskStatus), nullable=False)") {
		t.Error("model missing enum column")
	}
	if !strings.Contains(model, "title = Column(String(255), nullable=False, index=True)") {
		t.Errorf("model missing required string column:\n%s", model)
	}
}

func TestSchemaVariants(t *testing.T) {
	schema := string(render(t, KindSchema, taskConfig()).Content)

	for _, class := range []string{"class TaskBase(BaseModel):", "class TaskCreate(TaskBase):", "class TaskUpdate(BaseModel):", "class TaskRead(TaskBase):"} {
		if !strings.Contains(schema, class) {
			t.Errorf("schema missing %q", class)
		}
	}
	// create requires title; update makes it optional; read adds server fields
	if !strings.Contains(schema, "title: str") {
		t.Error("schema base missing required title")
	}
	if !strings.Contains(schema, "title: Optional[str] = None") {
		t.Error("schema update missing optional title")
	}
	for _, server := range []string{"id: int", "created_at: datetime", "updated_at: datetime"} {
		if !strings.Contains(schema, server) {
			t.Errorf("schema read missing server field %q", server)
		}
	}
}

func TestSchemaRuleValidators(t *testing.T) {
	cfg := taskConfig()
	cfg.Entities[0].Rules = []string{`when status == "done" then require estimate`}

	schema := string(render(t, KindSchema, cfg).Content)
	if !strings.Contains(schema, "@model_validator(mode=\"after\")") {
		t.Error("schema missing rule validator")
	}
	if !strings.Contains(schema, `if self.status == "done" and self.estimate is None:`) {
		t.Errorf("schema missing rule condition:\n%s", schema)
	}
}

func TestRoutePermissionGates(t *testing.T) {
	route := string(render(t, KindRoute, taskConfig()).Content)

	if !strings.Contains(route, `router = APIRouter(prefix="/api/tasks"`) {
		t.Error("route missing router prefix")
	}
	// list is open to admin and member; delete only to admin
	if !strings.Contains(route, `require_roles(["admin", "member"])`) {
		t.Errorf("route missing list role gate:\n%s", route)
	}
	if !strings.Contains(route, `require_roles(["admin"])`) {
		t.Error("route missing admin-only gate")
	}
	if !strings.Contains(route, `error_body("not_found"`) {
		t.Error("route missing error envelope")
	}
}

func TestServiceSearch(t *testing.T) {
	service := string(render(t, KindService, taskConfig()).Content)

	if !strings.Contains(service, "class TaskService:") {
		t.Error("service missing class")
	}
	if !strings.Contains(service, "Task.title.ilike(pattern)") {
		t.Errorf("service missing searchable filter:\n%s", service)
	}
	for _, exc := range []string{"class NotFoundError", "class ValidationFailure", "class PermissionDeniedError"} {
		if !strings.Contains(service, exc) {
			t.Errorf("service missing %q", exc)
		}
	}
}

func TestFormEditableFieldsOnly(t *testing.T) {
	cfg := taskConfig()
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, domain.EntityField{
		Name: "secret_score", Type: domain.FieldInteger,
		UI: domain.UIHints{ListVisible: true, Editable: false},
	})

	form := string(render(t, KindForm, cfg).Content)
	if strings.Contains(form, "secretScore") {
		t.Error("form rendered a non-editable field")
	}
	if !strings.Contains(form, `set("title"`) {
		t.Error("form missing editable title control")
	}
	if !strings.Contains(form, "<select") || !strings.Contains(form, `<option value="todo">`) {
		t.Error("form missing enum select control")
	}
	if !strings.Contains(form, `errors.title = "title is required"`) {
		t.Errorf("form missing required validation:\n%s", form)
	}
}

func TestListVisibleFieldsOnly(t *testing.T) {
	list := string(render(t, KindList, taskConfig()).Content)

	if !strings.Contains(list, `toggleSort("title")`) {
		t.Error("list missing sortable indexed column")
	}
	if strings.Contains(list, "estimate") {
		t.Error("list rendered a non-list-visible field")
	}
	if !strings.Contains(list, `type="search"`) {
		t.Error("list missing search input for searchable fields")
	}
	if !strings.Contains(list, "setPage(page + 1)") {
		t.Error("list missing pagination")
	}
	if !strings.Contains(list, "<h2>Tasks</h2>") {
		t.Error("list missing derived heading")
	}
}

func TestListNavigationHeading(t *testing.T) {
	cfg := taskConfig()
	cfg.Navigation = []domain.NavigationItem{
		{Label: "My Tasks", TargetEntity: "Task", Icon: "check", Order: 1},
	}

	list := string(render(t, KindList, cfg).Content)
	if !strings.Contains(list, "<h2>My Tasks</h2>") {
		t.Error("list heading ignores navigation label")
	}
}

// The route and API client artifacts are rendered from the same contract;
// every path and method in the client must appear in the route artifact's
// conventions.
func TestRouteClientContractAgreement(t *testing.T) {
	cfg := taskConfig()
	entity := &cfg.Entities[0]
	contract := NewRouteContract(entity)

	route := string(render(t, KindRoute, cfg).Content)
	client := string(render(t, KindAPIClient, cfg).Content)

	if contract.BasePath != "/api/tasks" {
		t.Fatalf("BasePath = %q", contract.BasePath)
	}
	if !strings.Contains(route, `prefix="`+contract.BasePath+`"`) {
		t.Error("route does not mount the contract base path")
	}

	for _, op := range contract.Ops {
		if !strings.Contains(client, `"`+op.Method+`"`) {
			t.Errorf("client missing method %s for op %s", op.Method, op.Name)
		}
		if !strings.Contains(client, "`"+op.TSPath()) {
			t.Errorf("client missing path for op %s (want %q)", op.Name, op.TSPath())
		}
		if !strings.Contains(route, `"`+op.RelPath+`"`) {
			t.Errorf("route missing relative path %q for op %s", op.RelPath, op.Name)
		}
	}
}

func TestGenerateRecordsRenderFailure(t *testing.T) {
	engine, err := templates.NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	cfg := taskConfig()
	// a rule that fails to parse is caught at render-context build time
	cfg.Entities[0].Rules = []string{"not a rule"}

	result := ByKind(engine, KindSchema).Generate(&cfg.Entities[0], cfg)
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorKind != ErrorKindRender {
		t.Errorf("ErrorKind = %q, want render", result.ErrorKind)
	}
	if result.Content != nil {
		t.Error("failed result should carry no content")
	}
}
