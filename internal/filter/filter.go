// Package filter evaluates field predicates against sealed records.
package filter

import (
	"strings"

	"github.com/atikulmunna/logsift/internal/model"
)

// Set is a conjunction of optional predicates. An empty string means the
// predicate was not supplied and always passes.
type Set struct {
	Date   string // substring of the timestamp
	Type   string // severity, compared case-insensitively
	Status string // status code, compared exactly
	Method string // HTTP method, compared case-insensitively
}

// Empty reports whether no predicate is set.
func (s Set) Empty() bool {
	return s == Set{}
}

// Match returns true if rec passes every supplied predicate. A predicate on a
// field the record kind does not have is ignored.
func (s Set) Match(rec model.Record) bool {
	return check(rec, model.KeyTimestamp, s.Date, strings.Contains) &&
		check(rec, model.KeySeverity, s.Type, strings.EqualFold) &&
		check(rec, model.KeyStatus, s.Status, equal) &&
		check(rec, model.KeyMethod, s.Method, strings.EqualFold)
}

// Apply returns the records of recs that pass s, in their original order.
func Apply[T model.Record](s Set, recs []T) []T {
	if s.Empty() {
		return recs
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if s.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func check(rec model.Record, k model.Key, want string, cmp func(got, want string) bool) bool {
	if want == "" {
		return true
	}
	got, ok := rec.Field(k)
	if !ok {
		return true
	}
	return cmp(got, want)
}

func equal(a, b string) bool { return a == b }
