// Package tuple implements tuple text parsing and per-attribute matching
// against a (possibly partial) query tuple (component F).
package tuple

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBadTuple is returned when a tuple's field count does not match the
// relation's attribute count.
var ErrBadTuple = errors.New("tuple: wrong number of attributes")

// Parse splits t on "," and validates its field count against nattrs.
func Parse(t string, nattrs int) ([]string, error) {
	vals := strings.Split(t, ",")
	if len(vals) != nattrs {
		return nil, fmt.Errorf("%w: got %d fields, want %d", ErrBadTuple, len(vals), nattrs)
	}
	return vals, nil
}

// Serialize joins attribute values back into a single tuple string.
func Serialize(vals []string) string {
	return strings.Join(vals, ",")
}

// ReadNext reads the next NL-terminated tuple line from r, the stdin-facing
// counterpart of the original readTuple: it strips the trailing newline and
// validates field count. Returns io.EOF-compatible false when the scanner is
// exhausted.
func ReadNext(sc *bufio.Scanner, nattrs int) (string, []string, bool, error) {
	if !sc.Scan() {
		return "", nil, false, sc.Err()
	}
	line := strings.TrimRight(sc.Text(), "\r\n")
	vals, err := Parse(line, nattrs)
	if err != nil {
		return line, nil, true, err
	}
	return line, vals, true, nil
}

// Match reports whether tuple t satisfies query q, attribute by attribute:
// "?" always matches; an attribute containing "%" is compiled to a regular
// expression (each "%" becomes ".*", anchored at the ends unless they
// themselves start/end with "%"); otherwise the attributes must be
// byte-for-byte equal.
func Match(q, t []string) (bool, error) {
	if len(q) != len(t) {
		return false, fmt.Errorf("tuple: match arity mismatch: query has %d, tuple has %d", len(q), len(t))
	}
	for i := range q {
		qi := q[i]
		switch {
		case qi == "?":
			continue
		case strings.Contains(qi, "%"):
			re, err := wildcardRegexp(qi)
			if err != nil {
				return false, err
			}
			if !re.MatchString(t[i]) {
				return false, nil
			}
		default:
			if qi != t[i] {
				return false, nil
			}
		}
	}
	return true, nil
}

// wildcardRegexp builds the regular expression for a query attribute
// containing one or more "%" wildcards: each "%" becomes ".*", other
// characters are taken literally (quoted), and the pattern is anchored with
// "^"/"$" unless it starts/ends with "%".
func wildcardRegexp(qi string) (*regexp.Regexp, error) {
	segments := strings.Split(qi, "%")
	var b strings.Builder
	if !strings.HasPrefix(qi, "%") {
		b.WriteByte('^')
	}
	for i, seg := range segments {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(seg))
	}
	if !strings.HasSuffix(qi, "%") {
		b.WriteByte('$')
	}
	return regexp.Compile(b.String())
}
