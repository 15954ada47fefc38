package schemaform

import (
	"strings"

	"github.com/davepar/schemaform/pointer"
)

// refTarget extracts the reference string carried by ref. A reference is
// either a pointer string or an object with exactly one key, $ref, whose
// value is a string; any other shape is not a reference.
func refTarget(ref any) (string, bool) {
	switch r := ref.(type) {
	case string:
		return r, true
	case map[string]any:
		if len(r) != 1 {
			return "", false
		}
		s, ok := r["$ref"].(string)
		return s, ok
	default:
		return "", false
	}
}

// IsRef reports whether v has the shape of a reference object.
func IsRef(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	_, ok = m["$ref"].(string)
	return ok
}

func placeholder(key string) map[string]any {
	return map[string]any{"$ref": key}
}

// ResolveRef resolves one reference against schema, memoizing through
// cache. Non-references are returned unchanged. Resolution is a single
// dereference step: the value found at the target pointer is returned
// (or, for a single-key {"allOf": [...]} target, the shallow merge of
// its resolved members), not recursively dereferenced.
//
// Circular pointers yield the placeholder {"$ref": key} unless
// allowCircular is set. The root self-reference ("") is always
// short-circuited; any other pointer observed again while its own
// resolution is still in progress is marked circular, so multi-hop
// cycles terminate instead of exhausting the stack.
//
// An unresolvable pointer yields nil and leaves no cache entry behind.
func ResolveRef(ref any, schema any, cache *RefCache, allowCircular bool) any {
	raw, ok := refTarget(ref)
	if !ok {
		return ref
	}
	if cache == nil {
		cache = NewRefCache()
	}

	// Remote references use the raw URI as cache key; Compile would
	// force a leading slash onto it.
	if strings.HasPrefix(raw, "http") {
		return resolveRemoteKey(raw, cache)
	}

	key := pointer.Compile(raw)

	// The trivial cycle: the document referencing its own root.
	if key == "" {
		cache.markCircular("")
		if allowCircular {
			return schema
		}
		return placeholder("")
	}

	if e, ok := cache.lookup(key); ok {
		switch {
		case e.circular && !allowCircular:
			return placeholder(key)
		case e.state == refResolved:
			return e.schema
		case e.state == refPending:
			return placeholder(key)
		default:
			// in progress on this very call stack: a cycle
			cache.markCircular(key)
			return placeholder(key)
		}
	}

	cache.begin(key, refInProgress)
	target, found := pointer.Get(schema, key)
	if !found {
		cache.abandon(key)
		return nil
	}

	if members, ok := allOfMembers(target); ok {
		merged := map[string]any{}
		for _, member := range members {
			resolved := ResolveRef(member, schema, cache, allowCircular)
			if m, ok := resolved.(map[string]any); ok {
				for k, v := range m {
					merged[k] = v
				}
			}
		}
		cache.complete(key, merged)
		return merged
	}

	cache.complete(key, target)
	return target
}

// resolveRemoteKey serves the synchronous path for an http reference:
// a resolved entry returns its document, anything else returns the
// placeholder while marking the key pending so no duplicate fetch is
// started for it.
func resolveRemoteKey(key string, cache *RefCache) any {
	if e, ok := cache.lookup(key); ok && e.state == refResolved {
		return e.schema
	}
	cache.begin(key, refPending)
	return placeholder(key)
}

// allOfMembers recognizes the single-key {"allOf": [...]} wrapper.
func allOfMembers(v any) ([]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return nil, false
	}
	members, ok := m["allOf"].([]any)
	return members, ok
}

// ResolveAll walks doc and substitutes every reference object with its
// resolved value, chasing reference chains until a non-reference or a
// circular placeholder is reached. Resolved subtrees are shared with
// their home location in doc, so their own inner references are fixed up
// when the walk reaches that location. The document is mutated in place
// and returned; a root-level reference object is resolved and returned
// without mutating doc.
func ResolveAll(doc any, cache *RefCache) any {
	if cache == nil {
		cache = NewRefCache()
	}
	if IsRef(doc) {
		return chaseRef(doc, doc, cache)
	}
	WalkDeep(doc, func(value any, key string, root any, ptr string) {
		if !IsRef(value) {
			return
		}
		resolved := chaseRef(value, doc, cache)
		pointer.Set(doc, ptr, resolved, false)
	})
	return doc
}

// chaseRef follows a chain of reference objects. Each hop is one
// ResolveRef step; a pointer seen twice in the chain ends it, leaving
// the circular placeholder in place.
func chaseRef(node any, root any, cache *RefCache) any {
	seen := map[string]bool{}
	cur := node
	for {
		if !IsRef(cur) {
			return cur
		}
		raw, _ := refTarget(cur)
		key := raw
		if !strings.HasPrefix(raw, "http") {
			key = pointer.Compile(raw)
		}
		if seen[key] {
			return cur
		}
		seen[key] = true
		next := ResolveRef(cur, root, cache, false)
		if next == nil {
			// unresolvable: keep the reference object as-is
			return cur
		}
		cur = next
	}
}
