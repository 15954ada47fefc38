package schemaform

import (
	"fmt"

	"github.com/davepar/schemaform/pointer"
)

// InputRequired reports whether the leaf addressed by dataPointer is
// named in the `required` list of its containing object schema. A
// trailing "-" on the parent path denotes the next new array item, in
// which case the list is read from the ancestor's items sub-schema.
// A schema that is not an object or array yields an Issues error.
func InputRequired(schema any, dataPointer string) (bool, error) {
	switch schema.(type) {
	case map[string]any, []any:
	default:
		return false, singleIssue(CodeInvalidSchema, "",
			fmt.Sprintf("expected schema object, got %T", schema))
	}
	segs := pointer.Parse(dataPointer)
	if len(segs) == 0 {
		return false, nil
	}
	key := segs[len(segs)-1]
	parent := segs[:len(segs)-1]

	var listPath []string
	if n := len(parent); n > 0 && parent[n-1] == pointer.Append {
		listPath = append(append([]string{}, parent[:n-1]...), "items", "required")
	} else {
		listPath = append(append([]string{}, parent...), "required")
	}

	list, ok := pointer.Get(schema, pointer.Join(listPath))
	if !ok {
		return false, nil
	}
	names, ok := list.([]any)
	if !ok {
		return false, nil
	}
	for _, name := range names {
		if s, ok := name.(string); ok && s == key {
			return true, nil
		}
	}
	return false, nil
}

// IsInputRequired is the lenient form of InputRequired: malformed input
// reports false instead of an error, so a UI-construction loop is never
// interrupted by a single bad field.
func IsInputRequired(schema any, dataPointer string) bool {
	required, _ := InputRequired(schema, dataPointer)
	return required
}
