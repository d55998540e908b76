// Package project implements attribute projection (component I): filtering
// a tuple down to a 1-based list of attribute indices, or passing it
// through unchanged for "*".
package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diskrel/diskrel/internal/tuple"
)

// Spec is a parsed projection list.
type Spec struct {
	all     bool
	indices []int // 0-based
}

// Parse parses a 1-based comma list of attribute indices, or "*" for every
// attribute, against an nAttrs-attribute relation.
func Parse(spec string, nAttrs int) (Spec, error) {
	spec = strings.TrimSpace(spec)
	if spec == "*" {
		return Spec{all: true}, nil
	}
	parts := strings.Split(spec, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Spec{}, fmt.Errorf("project: bad attribute index %q: %w", part, err)
		}
		if n < 1 || n > nAttrs {
			return Spec{}, fmt.Errorf("project: attribute index %d out of range [1,%d]", n, nAttrs)
		}
		indices = append(indices, n-1)
	}
	return Spec{indices: indices}, nil
}

// Apply filters t's attributes down to the configured indices and rejoins
// them with commas.
// A "*" spec returns t unchanged, without touching the underlying bytes.
func (s Spec) Apply(t string, nAttrs int) (string, error) {
	if s.all {
		return t, nil
	}
	vals, err := tuple.Parse(t, nAttrs)
	if err != nil {
		return "", err
	}
	out := make([]string, len(s.indices))
	for i, idx := range s.indices {
		out[i] = vals[idx]
	}
	return strings.Join(out, ","), nil
}
