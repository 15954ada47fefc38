package schemaform_test

import (
	"testing"

	schemaform "github.com/davepar/schemaform"
)

func TestIsInputRequired_TopLevel(t *testing.T) {
	schema := map[string]any{
		"required":   []any{"name"},
		"properties": map[string]any{"name": map[string]any{"type": "string"}},
	}
	if !schemaform.IsInputRequired(schema, "/name") {
		t.Fatalf("/name must be required")
	}
	if schemaform.IsInputRequired(schema, "/other") {
		t.Fatalf("/other must not be required")
	}
}

func TestIsInputRequired_NestedPath(t *testing.T) {
	schema := map[string]any{
		"address": map[string]any{
			"required": []any{"city"},
		},
	}
	if !schemaform.IsInputRequired(schema, "/address/city") {
		t.Fatalf("nested required lookup failed")
	}
	if schemaform.IsInputRequired(schema, "/address/street") {
		t.Fatalf("street is not in the required list")
	}
}

func TestIsInputRequired_NewArrayItem(t *testing.T) {
	schema := map[string]any{
		"list": map[string]any{
			"items": map[string]any{
				"required": []any{"x"},
			},
		},
	}
	if !schemaform.IsInputRequired(schema, "/list/-/x") {
		t.Fatalf("new-array-item required lookup failed")
	}
	if schemaform.IsInputRequired(schema, "/list/-/y") {
		t.Fatalf("y is not in the items required list")
	}
}

func TestIsInputRequired_ExactMatchOnly(t *testing.T) {
	schema := map[string]any{"required": []any{"Name", "name-suffix"}}
	if schemaform.IsInputRequired(schema, "/name") {
		t.Fatalf("matching must be exact and case-sensitive")
	}
}

func TestIsInputRequired_LenientOnBadInput(t *testing.T) {
	if schemaform.IsInputRequired("not a schema", "/a") {
		t.Fatalf("non-object schema must report false")
	}
	schema := map[string]any{"required": []any{"a"}}
	if schemaform.IsInputRequired(schema, "") {
		t.Fatalf("empty pointer must report false")
	}
	// a required value of the wrong shape is treated as absent
	bad := map[string]any{"required": "a"}
	if schemaform.IsInputRequired(bad, "/a") {
		t.Fatalf("non-array required list must report false")
	}
}

func TestInputRequired_ReportsIssueOnBadSchema(t *testing.T) {
	_, err := schemaform.InputRequired(42, "/a")
	if err == nil {
		t.Fatalf("expected an error for a non-object schema")
	}
	iss, ok := schemaform.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != schemaform.CodeInvalidSchema {
		t.Fatalf("unexpected issues: %v", err)
	}
}
