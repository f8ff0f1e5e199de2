// Package rlvparser turns lexed segment tokens into typed Commands,
// resolving behavior aliases and parsing each behavior's option grammar
// (spec.md §4.1). Grounded on the teacher's internal/parser package: one
// exported entry point, internal per-construct parse helpers, and errors
// collected as a boolean success signal rather than panics.
package rlvparser

import (
	"rlv/internal/behavior"
)

// Op is what a parsed segment asks the engine to do (spec.md §4.1's
// dispatch-by-param table).
type Op int

const (
	OpInvalid Op = iota
	OpClear
	OpForce
	OpAdd
	OpRemove
	OpGet
)

// Command is the typed result of parsing one segment.
type Command struct {
	Raw              string
	OriginalBehavior string // as typed by the issuer, lowercased (spec.md §4.1)
	Behavior         behavior.Kind
	Meta             behavior.Meta
	HasMeta          bool   // false for get-only/unknown behaviors outside the restriction registry
	Option           string // case preserved (spec.md §4.1)
	Op               Op
	Channel          int      // valid when Op == OpGet
	ClearFilter      string   // valid when Op == OpClear
	Args             []string // canonical string form of the parsed option, valid when Op == OpAdd/OpRemove
}
