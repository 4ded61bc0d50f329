package templates

import (
	"strings"
	"text/template"
)

// Funcs returns the helper set available to every template: naming
// conversions plus the two type-mapping tables.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"pascal":     ToPascalCase,
		"snake":      ToSnakeCase,
		"camel":      ToCamelCase,
		"pluralize":  Pluralize,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"columnType": ColumnType,
		"pyType":     PythonType,
		"tsType":     TypeScriptType,
	}
}

// ToPascalCase converts snake_case or camelCase to PascalCase.
func ToPascalCase(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		if len(w) > 1 {
			b.WriteString(strings.ToLower(w[1:]))
		}
	}
	return b.String()
}

// ToCamelCase converts snake_case or PascalCase to camelCase.
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// ToSnakeCase converts PascalCase or camelCase to snake_case.
func ToSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Pluralize applies the common English pluralization rules to an identifier.
// It works on the final word of a multi-word name.
func Pluralize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return s + "es"
	case strings.HasSuffix(lower, "y") && len(s) > 1 && !isVowel(lower[len(lower)-2]):
		return s[:len(s)-1] + "ies"
	default:
		return s + "s"
	}
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		case i > 0 && r >= 'A' && r <= 'Z' && cur.Len() > 0:
			words = append(words, cur.String())
			cur.Reset()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}
