package templates

import "github.com/domainforge/domainforge/domain"

// The two type-mapping tables below are the single source of truth for type
// fidelity across every generator. The backend table targets the persistence
// and validation layers; the frontend table targets the UI type system, where
// decimal degrades to a plain numeric display type. Enum fields are handled
// by the generators themselves since they render a companion type.

var columnTypes = map[domain.FieldType]string{
	domain.FieldString:   "String(255)",
	domain.FieldText:     "Text",
	domain.FieldInteger:  "Integer",
	domain.FieldDecimal:  "Numeric(12, 2)",
	domain.FieldBoolean:  "Boolean",
	domain.FieldDate:     "Date",
	domain.FieldDateTime: "DateTime",
	domain.FieldEmail:    "String(320)",
	domain.FieldURL:      "String(2048)",
	domain.FieldJSON:     "JSON",
	domain.FieldFile:     "String(1024)",
	domain.FieldImage:    "String(1024)",
}

var pythonTypes = map[domain.FieldType]string{
	domain.FieldString:   "str",
	domain.FieldText:     "str",
	domain.FieldInteger:  "int",
	domain.FieldDecimal:  "Decimal",
	domain.FieldBoolean:  "bool",
	domain.FieldDate:     "date",
	domain.FieldDateTime: "datetime",
	domain.FieldEmail:    "EmailStr",
	domain.FieldURL:      "AnyUrl",
	domain.FieldJSON:     "dict",
	domain.FieldFile:     "str",
	domain.FieldImage:    "str",
}

var typeScriptTypes = map[domain.FieldType]string{
	domain.FieldString:   "string",
	domain.FieldText:     "string",
	domain.FieldInteger:  "number",
	domain.FieldDecimal:  "number",
	domain.FieldBoolean:  "boolean",
	domain.FieldDate:     "string",
	domain.FieldDateTime: "string",
	domain.FieldEmail:    "string",
	domain.FieldURL:      "string",
	domain.FieldJSON:     "Record<string, unknown>",
	domain.FieldFile:     "string",
	domain.FieldImage:    "string",
}

// ColumnType maps a field type to its persistence column type.
func ColumnType(t domain.FieldType) string {
	if col, ok := columnTypes[t]; ok {
		return col
	}
	return "String(255)"
}

// PythonType maps a field type to its Python annotation type.
func PythonType(t domain.FieldType) string {
	if py, ok := pythonTypes[t]; ok {
		return py
	}
	return "str"
}

// TypeScriptType maps a field type to its TypeScript type.
func TypeScriptType(t domain.FieldType) string {
	if ts, ok := typeScriptTypes[t]; ok {
		return ts
	}
	return "string"
}
