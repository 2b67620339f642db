// Package dvalid is the pre-flight domain check the encoder deliberately
// skips: it walks a candidate value tree against the schema and collects
// every range, membership, length, and shape violation as a path-addressed
// issue list instead of stopping at the first one.
package dvalid

import (
	"fmt"
	"strings"
)

type (
	Issue struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	}
	Issues []Issue
)

func (r Issues) Error() string {
	if len(r) == 0 {
		return ""
	}
	const maxShown = 3
	shown := len(r)
	if shown > maxShown {
		shown = maxShown
	}
	builder := strings.Builder{}
	for i := 0; i < shown; i++ {
		if i > 0 {
			builder.WriteString("; ")
		}
		fmt.Fprintf(&builder, "%s at %s", r[i].Message, r[i].Path)
	}
	if len(r) > shown {
		fmt.Fprintf(&builder, "; ... (total %d)", len(r))
	}
	return builder.String()
}

func (r Issues) OrNil() error {
	if len(r) == 0 {
		return nil
	}
	return r
}
