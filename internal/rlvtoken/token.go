// Package rlvtoken defines the token kinds the segment lexer produces,
// mirroring the shape of the teacher interpreter's own token package but
// over the much smaller RLV wire grammar (spec.md §4.1).
package rlvtoken

type Type string

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	BEHAVIOR Type = "BEHAVIOR" // text before an optional ':' and before '='
	COLON    Type = "COLON"
	OPTION   Type = "OPTION" // text between ':' and '=', case preserved
	EQUALS   Type = "EQUALS"
	PARAM    Type = "PARAM" // text after the first '=' to end of segment
)

// Token is one lexical unit of a single "@" command segment.
type Token struct {
	Type     Type
	Literal  string
	Position int // byte offset into the segment
}
