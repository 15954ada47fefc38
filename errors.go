package schemaform

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidSchema  = "invalid_schema"
	CodeInvalidPointer = "invalid_pointer"
	CodeParseError     = "parse_error"
	CodeFetchFailed    = "fetch_failed"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /defs/address).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"got": "string"}) for
	// observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_schema at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the first underlying cause, when present.
func (iss Issues) Unwrap() error {
	for _, it := range iss {
		if it.Cause != nil {
			return it.Cause
		}
	}
	return nil
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, path, msg string) Issues {
	return Issues{Issue{Code: code, Path: path, Message: msg}}
}
