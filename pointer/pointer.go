// Package pointer implements RFC 6901 JSON Pointers over dynamic
// document trees (map[string]any / []any / primitives).
//
// The contract is deliberately lenient: malformed input compiles to the
// root pointer and Get reports absence instead of returning an error, so
// callers stay resilient while a document is still under construction.
package pointer

import (
	"strconv"
	"strings"
)

// Append is the literal array segment meaning "next new item" per
// RFC 6901 section 4.
const Append = "-"

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Escape encodes one segment for embedding in a pointer string.
func Escape(segment string) string { return escaper.Replace(segment) }

// Unescape decodes one pointer-string segment back to its literal form.
func Unescape(segment string) string { return unescaper.Replace(segment) }

// Compile normalizes a pointer-like value into its canonical string form,
// suitable as a cache key. Accepted inputs are a pointer string (a missing
// leading '/' is supplied) and a segment slice ([]string or []any of
// strings). Anything else compiles to the root pointer "".
func Compile(ptr any) string {
	switch p := ptr.(type) {
	case string:
		if p == "" {
			return ""
		}
		if !strings.HasPrefix(p, "/") {
			return "/" + p
		}
		return p
	case []string:
		return Join(p)
	case []any:
		segs := make([]string, 0, len(p))
		for _, s := range p {
			str, ok := s.(string)
			if !ok {
				return ""
			}
			segs = append(segs, str)
		}
		return Join(segs)
	default:
		return ""
	}
}

// Join builds the canonical string form from literal segments, escaping
// each one.
func Join(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(Escape(seg))
	}
	return b.String()
}

// Parse splits a pointer-like value into its literal (unescaped) segments.
// The root pointer parses to an empty slice.
func Parse(ptr any) []string {
	s := Compile(ptr)
	if s == "" {
		return nil
	}
	segs := strings.Split(s[1:], "/")
	for i, seg := range segs {
		segs[i] = Unescape(seg)
	}
	return segs
}

// LastSegment returns the final literal segment of ptr, or "" for the
// root pointer.
func LastSegment(ptr any) string {
	segs := Parse(ptr)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Get walks ptr from the root of doc and returns the addressed value.
// ok is false the moment a segment is missing; a present-but-nil leaf
// reports ok == true.
func Get(doc any, ptr any) (any, bool) {
	cur := doc
	for _, seg := range Parse(ptr) {
		next, ok := child(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether ptr addresses an existing location in doc.
func Has(doc any, ptr any) bool {
	_, ok := Get(doc, ptr)
	return ok
}

// Set walks to the parent of ptr's final segment and assigns value there.
// When createMissing is true, absent intermediate objects are created as
// map[string]any. Returns false when the walk cannot reach the parent
// (including an array index out of range) or ptr is the root pointer.
//
// Because []any append cannot be reflected into an arbitrary parent, the
// Append segment ("-") and out-of-range indices are not assignable; schema
// templates address object positions, which is the supported use.
func Set(doc any, ptr any, value any, createMissing bool) bool {
	segs := Parse(ptr)
	if len(segs) == 0 {
		return false
	}
	cur := doc
	for _, seg := range segs[:len(segs)-1] {
		next, ok := child(cur, seg)
		if !ok || next == nil {
			if !createMissing {
				return false
			}
			m, isMap := cur.(map[string]any)
			if !isMap {
				return false
			}
			created := map[string]any{}
			m[seg] = created
			cur = created
			continue
		}
		cur = next
	}
	last := segs[len(segs)-1]
	switch c := cur.(type) {
	case map[string]any:
		c[last] = value
		return true
	case []any:
		i, err := strconv.Atoi(last)
		if err != nil || i < 0 || i >= len(c) {
			return false
		}
		c[i] = value
		return true
	default:
		return false
	}
}

// child resolves one segment against a container value.
func child(v any, seg string) (any, bool) {
	switch c := v.(type) {
	case map[string]any:
		got, ok := c[seg]
		return got, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	default:
		return nil, false
	}
}
