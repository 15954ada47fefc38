package schemaform

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadJSON decodes a JSON schema document into the any-tree the engines
// operate on. Numbers decode as json.Number to avoid precision loss.
func LoadJSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, Issues{Issue{Code: CodeParseError, Message: "decode json", Cause: err}}
	}
	return doc, nil
}

// LoadYAML decodes the first document of a YAML stream, normalizing
// map[any]any containers into map[string]any so that pointer addressing
// and traversal see one object shape.
func LoadYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, Issues{Issue{Code: CodeParseError, Message: "decode yaml", Cause: err}}
	}
	return normalizeYAML(node), nil
}

// LoadFile loads a schema document, dispatching on file extension:
// .yaml/.yml through LoadYAML, everything else through LoadJSON.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Issues{Issue{Code: CodeParseError, Path: path, Message: "read file", Cause: err}}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadJSON(data)
	}
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeYAML(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}
