package schemaform

import (
	"slices"
	"strconv"

	"github.com/davepar/schemaform/pointer"
)

// Visitor is invoked for every descendant of the walked root with the
// node's value, its key in the parent, the walked root, and the node's
// JSON Pointer. It is called for its side effects on the shared tree.
type Visitor func(value any, key string, root any, ptr string)

// nodeKind is the closed set of shapes traversal dispatches on.
type nodeKind int

const (
	kindPrimitive nodeKind = iota
	kindObject
	kindArray
)

func kindOf(v any) nodeKind {
	switch v.(type) {
	case map[string]any:
		return kindObject
	case []any:
		return kindArray
	default:
		return kindPrimitive
	}
}

// WalkDeep walks every descendant of node top-down (pre-order) and
// returns node. The root itself is never passed to the visitor, so a
// childless document produces no visits. Object keys are visited in
// sorted order, array elements in index order; within one walk the visit
// order is deterministic.
func WalkDeep(node any, visit Visitor) any {
	walkDeep(node, visit, node, "", false)
	return node
}

// WalkDeepBottomUp is WalkDeep in post-order: children are visited
// before their parent, for transformations that need children already
// processed. Sibling order is unchanged.
func WalkDeepBottomUp(node any, visit Visitor) any {
	walkDeep(node, visit, node, "", true)
	return node
}

func walkDeep(node any, visit Visitor, root any, ptr string, bottomUp bool) {
	isRoot := ptr == ""
	if !isRoot && !bottomUp {
		visit(node, pointer.LastSegment(ptr), root, ptr)
	}
	switch kindOf(node) {
	case kindArray:
		arr := node.([]any)
		for i := range arr {
			walkDeep(arr[i], visit, root, ptr+"/"+strconv.Itoa(i), bottomUp)
		}
	case kindObject:
		m := node.(map[string]any)
		for _, k := range sortedKeys(m) {
			// read through the map so visitor mutations of earlier
			// siblings are observed
			walkDeep(m[k], visit, root, ptr+"/"+pointer.Escape(k), bottomUp)
		}
	}
	if !isRoot && bottomUp {
		visit(node, pointer.LastSegment(ptr), root, ptr)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
