package templates

import "testing"

func TestToPascalCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"work_item", "WorkItem"},
		{"task", "Task"},
		{"Task", "Task"},
		{"apiClient", "ApiClient"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToPascalCase(tt.in); got != tt.want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"WorkItem", "work_item"},
		{"Task", "task"},
		{"dueDate", "due_date"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		if got := ToSnakeCase(tt.in); got != tt.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"work_item", "workItem"},
		{"Task", "task"},
		{"due_date", "dueDate"},
	}
	for _, tt := range tests {
		if got := ToCamelCase(tt.in); got != tt.want {
			t.Errorf("ToCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"task", "tasks"},
		{"category", "categories"},
		{"box", "boxes"},
		{"status", "statuses"},
		{"day", "days"},
		{"branch", "branches"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Pluralize(tt.in); got != tt.want {
			t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
