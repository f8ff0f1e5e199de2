// Package restriction is the live restriction store: a set of
// (behavior, issuer, args) tuples with add/remove/clear semantics and a
// mutate-then-emit event discipline (spec.md §4.2, §9).
package restriction

import (
	"strings"

	"rlv/internal/behavior"
)

// Restriction is a single live policy assertion (spec.md §3).
type Restriction struct {
	Behavior         behavior.Kind
	OriginalBehavior string
	IssuerPrimID     string
	IssuerName       string
	Args             []string
}

// Equal reports tuple equality: behavior, issuer, and argument sequence all
// match (spec.md §3).
func (r Restriction) Equal(o Restriction) bool {
	if r.Behavior != o.Behavior || r.IssuerPrimID != o.IssuerPrimID {
		return false
	}
	if len(r.Args) != len(o.Args) {
		return false
	}
	for i := range r.Args {
		if r.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// IsException reports whether this restriction carries arguments, which
// (for behaviors that admit the exception form) makes it an exception
// rather than a plain restriction (spec.md §3(b)).
func (r Restriction) IsException() bool { return len(r.Args) > 0 }

// ArgString renders Args the way @getstatus echoes them: semicolon-joined,
// stripping the "wearable:"/"attachpt:"/"path:" grammar tags added by the
// option parser.
func (r Restriction) ArgString() string {
	if len(r.Args) == 0 {
		return ""
	}
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = stripGrammarTag(a)
	}
	return strings.Join(parts, ";")
}

func stripGrammarTag(s string) string {
	for _, prefix := range []string{"wearable:", "attachpt:", "path:"} {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

// Event reports one store mutation, emitted after the mutation commits
// (spec.md §4.2, §5).
type Event struct {
	Restriction Restriction
	IsNew       bool
	IsDeleted   bool
}
