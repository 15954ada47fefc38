package schemaform

import (
	"strconv"
)

// LayoutVisitor transforms one layout node. It receives the node (with
// its items/tabs children already mapped), the node's index in the final
// output sequence, the original root layout, and the node's JSON Pointer
// reflecting that final index. The return value drives the output:
//
//   - nil drops the node
//   - []any splices every element in place of the node
//   - anything else is appended as the single replacement
type LayoutVisitor func(node any, index int, root []any, path string) any

// MapLayout rebuilds a layout sequence through fn. The input is never
// mutated; nodes whose items/tabs children change are shallow-copied
// first. Reported indices and paths account for prior deletions and
// fan-out at the same level, so they always match the node's final
// position.
func MapLayout(layout []any, fn LayoutVisitor) []any {
	return mapLayout(layout, fn, layout, "")
}

func mapLayout(layout []any, fn LayoutVisitor, root []any, path string) []any {
	out := make([]any, 0, len(layout))
	indexPad := 0
	for i, item := range layout {
		realIndex := i + indexPad
		newPath := path + "/" + strconv.Itoa(realIndex)
		node := mapLayoutChildren(item, fn, root, newPath)
		switch mapped := fn(node, realIndex, root, newPath); v := mapped.(type) {
		case nil:
			indexPad--
		case []any:
			out = append(out, v...)
			indexPad += len(v) - 1
		default:
			out = append(out, mapped)
		}
	}
	return out
}

// mapLayoutChildren recurses into a node's items or tabs sub-sequence,
// items taking priority, replacing it on a shallow copy.
func mapLayoutChildren(item any, fn LayoutVisitor, root []any, path string) any {
	m, ok := item.(map[string]any)
	if !ok {
		return item
	}
	if items, ok := m["items"].([]any); ok {
		cp := shallowCopy(m)
		cp["items"] = mapLayout(items, fn, root, path+"/items")
		return cp
	}
	if tabs, ok := m["tabs"].([]any); ok {
		cp := shallowCopy(m)
		cp["tabs"] = mapLayout(tabs, fn, root, path+"/tabs")
		return cp
	}
	return item
}

func shallowCopy(m map[string]any) map[string]any {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
