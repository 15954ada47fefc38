package schemaform

// Package schemaform provides:
//
// - Reference resolution for JSON Schema documents ($ref, allOf-of-refs,
//   root self-reference and cycle placeholders) with a caller-owned cache
// - Generic deep traversal reporting every node's JSON Pointer (WalkDeep)
//   and a rebuilding layout walker with delete/fan-out support (MapLayout)
// - A required-field query over resolved schemas (IsInputRequired)
//
// Design policy:
// - Keep only public APIs in the root package; the pointer engine lives in
//   pointer/ and the CLI under cmd/schemaform.
// - Lenient surfaces resolve to sentinel values (nil, false, unchanged
//   input) so a malformed fragment degrades instead of aborting a pass;
//   strict variants report Issues.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := schemaform.LoadFile("schema.json")
//	cache := schemaform.NewRefCache()
//	resolved := schemaform.ResolveAll(doc, cache)
//	required := schemaform.IsInputRequired(resolved, "/name")
