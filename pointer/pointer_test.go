package pointer_test

import (
	"reflect"
	"testing"

	"github.com/davepar/schemaform/pointer"
)

func TestCompile_Normalizes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"empty string", "", ""},
		{"missing leading slash", "a/b", "/a/b"},
		{"already canonical", "/a/b", "/a/b"},
		{"segment slice", []string{"a", "b"}, "/a/b"},
		{"any slice", []any{"defs", "item"}, "/defs/item"},
		{"escaped segments", []string{"a/b", "c~d"}, "/a~1b/c~0d"},
		{"nil input", nil, ""},
		{"numeric input", 42, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pointer.Compile(tc.in); got != tc.want {
				t.Fatalf("Compile(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	seqs := [][]string{
		{"a"},
		{"a", "0", "b"},
		{"with/slash", "with~tilde"},
		{"", "empty-first"},
	}
	for _, segs := range seqs {
		got := pointer.Parse(pointer.Compile(pointer.Join(segs)))
		if !reflect.DeepEqual(got, segs) {
			t.Fatalf("round trip of %v = %v", segs, got)
		}
	}
	if got := pointer.Parse(""); got != nil {
		t.Fatalf("Parse(root) = %v, want nil", got)
	}
}

func TestEscapeUnescape(t *testing.T) {
	for _, s := range []string{"plain", "a/b", "a~b", "~/", "~01"} {
		if got := pointer.Unescape(pointer.Escape(s)); got != s {
			t.Fatalf("Unescape(Escape(%q)) = %q", s, got)
		}
	}
	// Order matters: ~1 must be rewritten before ~0 on unescape so that
	// "~01" decodes to "~1", not "/".
	if got := pointer.Unescape("~01"); got != "~1" {
		t.Fatalf("Unescape(~01) = %q, want ~1", got)
	}
}

func TestGet(t *testing.T) {
	doc := map[string]any{
		"points": []any{
			map[string]any{"x": 1, "y": 2},
			map[string]any{"x": 3, "y": 4},
		},
		"nil-leaf": nil,
	}

	v, ok := pointer.Get(doc, "/points/1/x")
	if !ok || v != 3 {
		t.Fatalf("Get(/points/1/x) = %v, %v", v, ok)
	}
	if v, ok := pointer.Get(doc, ""); !ok || !reflect.DeepEqual(v, doc) {
		t.Fatalf("root Get = %v, %v", v, ok)
	}
	if _, ok := pointer.Get(doc, "/points/7"); ok {
		t.Fatalf("out-of-range index should be absent")
	}
	if _, ok := pointer.Get(doc, "/missing/deep"); ok {
		t.Fatalf("missing branch should be absent")
	}
	if v, ok := pointer.Get(doc, "/nil-leaf"); !ok || v != nil {
		t.Fatalf("nil leaf should be present: %v, %v", v, ok)
	}
}

func TestSet(t *testing.T) {
	doc := map[string]any{"a": map[string]any{}}

	if !pointer.Set(doc, "/a/b", 1, false) {
		t.Fatalf("Set on existing parent failed")
	}
	if v, _ := pointer.Get(doc, "/a/b"); v != 1 {
		t.Fatalf("Set did not assign: %v", v)
	}

	if pointer.Set(doc, "/x/y", 2, false) {
		t.Fatalf("Set without createMissing should fail on absent parent")
	}
	if !pointer.Set(doc, "/x/y", 2, true) {
		t.Fatalf("Set with createMissing failed")
	}
	if v, _ := pointer.Get(doc, "/x/y"); v != 2 {
		t.Fatalf("created intermediate not assigned: %v", v)
	}

	arr := map[string]any{"list": []any{"a", "b"}}
	if !pointer.Set(arr, "/list/1", "c", false) {
		t.Fatalf("array index Set failed")
	}
	if v, _ := pointer.Get(arr, "/list/1"); v != "c" {
		t.Fatalf("array element not replaced: %v", v)
	}
	if pointer.Set(arr, "/list/-", "d", false) {
		t.Fatalf("append segment is not assignable")
	}
}

func TestLastSegment(t *testing.T) {
	if got := pointer.LastSegment("/a/b~1c"); got != "b/c" {
		t.Fatalf("LastSegment = %q", got)
	}
	if got := pointer.LastSegment(""); got != "" {
		t.Fatalf("root LastSegment = %q", got)
	}
}
