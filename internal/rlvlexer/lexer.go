// Package rlvlexer tokenizes a single RLV command segment
// ("behavior[:option]=param" or the literal "clear") the same way the
// teacher's internal/lexer reads a source file: one byte at a time, with
// read/peek cursors, never via regexp.
package rlvlexer

import "rlv/internal/rlvtoken"

// Lexer scans one already-comma-split segment.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

// New returns a Lexer over a single segment (no leading '@', no commas).
func New(segment string) *Lexer {
	l := &Lexer{input: segment}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// Tokens scans the whole segment into behavior/colon/option/equals/param
// tokens. The scan is purely positional: the first ':' before the first
// '=' introduces OPTION, the first '=' introduces PARAM (which runs to the
// end of the segment, since param is greedy per spec.md §4.1).
func (l *Lexer) Tokens() []rlvtoken.Token {
	var toks []rlvtoken.Token

	behaviorStart := l.position
	for l.ch != 0 && l.ch != ':' && l.ch != '=' {
		l.readChar()
	}
	toks = append(toks, rlvtoken.Token{
		Type:     rlvtoken.BEHAVIOR,
		Literal:  l.input[behaviorStart:l.position],
		Position: behaviorStart,
	})

	if l.ch == ':' {
		toks = append(toks, rlvtoken.Token{Type: rlvtoken.COLON, Literal: ":", Position: l.position})
		l.readChar()
		optStart := l.position
		for l.ch != 0 && l.ch != '=' {
			l.readChar()
		}
		toks = append(toks, rlvtoken.Token{
			Type:     rlvtoken.OPTION,
			Literal:  l.input[optStart:l.position],
			Position: optStart,
		})
	}

	if l.ch == '=' {
		toks = append(toks, rlvtoken.Token{Type: rlvtoken.EQUALS, Literal: "=", Position: l.position})
		l.readChar()
		paramStart := l.position
		// param is greedy to the end of the segment (spec.md §4.1).
		for l.ch != 0 {
			l.readChar()
		}
		toks = append(toks, rlvtoken.Token{
			Type:     rlvtoken.PARAM,
			Literal:  l.input[paramStart:],
			Position: paramStart,
		})
	}

	toks = append(toks, rlvtoken.Token{Type: rlvtoken.EOF, Position: l.position})
	return toks
}

// SplitSegments splits a full "@seg1,seg2,..." command string on top-level
// commas, after stripping a single leading '@'. There is no escaping in the
// wire grammar (spec.md §4.1).
func SplitSegments(message string) []string {
	msg := message
	if len(msg) > 0 && msg[0] == '@' {
		msg = msg[1:]
	}
	if msg == "" {
		return nil
	}
	return splitOnComma(msg)
}

func splitOnComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
