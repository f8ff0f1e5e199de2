package rlvparser

import (
	"strconv"
	"strings"

	"rlv/internal/behavior"
	"rlv/internal/rlvlexer"
	"rlv/internal/rlvtoken"
)

// ParseMessage splits a full "@seg1,seg2,..." chat string into segments and
// parses each independently. A parse error in one segment never aborts the
// others (spec.md §4.1): the returned slice always has one entry per
// segment, with ok=false marking the ones that failed.
func ParseMessage(message string) []ParsedSegment {
	segments := rlvlexer.SplitSegments(message)
	out := make([]ParsedSegment, 0, len(segments))
	for _, seg := range segments {
		cmd, ok := ParseSegment(seg)
		out = append(out, ParsedSegment{Command: cmd, OK: ok})
	}
	return out
}

// ParsedSegment pairs a parse result with its success flag, since a failed
// segment still has to be accounted for when the facade ANDs segment
// results together (spec.md §4.1).
type ParsedSegment struct {
	Command Command
	OK      bool
}

// ParseSegment parses one already-comma-split segment.
func ParseSegment(segment string) (Command, bool) {
	trimmed := strings.TrimSpace(segment)
	if strings.EqualFold(trimmed, "clear") {
		return Command{Raw: segment, Op: OpClear, OriginalBehavior: "clear"}, true
	}

	toks := rlvlexer.New(trimmed).Tokens()
	var behaviorTok, optionTok, paramTok rlvtoken.Token
	haveOption, haveParam := false, false
	for _, t := range toks {
		switch t.Type {
		case rlvtoken.BEHAVIOR:
			behaviorTok = t
		case rlvtoken.OPTION:
			optionTok = t
			haveOption = true
		case rlvtoken.PARAM:
			paramTok = t
			haveParam = true
		}
	}
	if !haveParam || behaviorTok.Literal == "" {
		return Command{Raw: segment}, false
	}

	originalBehavior := strings.ToLower(strings.TrimSpace(behaviorTok.Literal))
	param := strings.ToLower(strings.TrimSpace(paramTok.Literal))
	option := ""
	if haveOption {
		option = optionTok.Literal // case preserved
	}

	cmd := Command{
		Raw:              segment,
		OriginalBehavior: originalBehavior,
		Option:           option,
	}

	canonKind, meta, known := behavior.Canonicalize(originalBehavior)
	if known {
		cmd.Behavior = canonKind
		cmd.Meta = meta
		cmd.HasMeta = true
	} else {
		cmd.Behavior = behavior.Kind(originalBehavior)
	}

	switch {
	case param == "clear":
		cmd.Op = OpClear
		cmd.ClearFilter = option
		return cmd, true

	case param == "force":
		cmd.Op = OpForce
		return cmd, true

	case param == "n" || param == "add":
		return finishAddOrRemove(cmd, OpAdd, known)

	case param == "y" || param == "rem":
		return finishAddOrRemove(cmd, OpRemove, known)

	default:
		if ch, err := strconv.Atoi(param); err == nil && ch != 0 {
			cmd.Op = OpGet
			cmd.Channel = ch
			return cmd, true
		}
		return cmd, false
	}
}

func finishAddOrRemove(cmd Command, op Op, known bool) (Command, bool) {
	cmd.Op = op
	if !known {
		// An unknown behavior is a parse error for the restriction forms
		// (spec.md §7); only =force and =channel tolerate open-ended names
		// (setdebug_X, getenv_X, ...).
		return cmd, false
	}
	args, ok := parseOption(cmd.Meta, cmd.Option)
	if !ok {
		return cmd, false
	}
	cmd.Args = args

	// Secure-variant single-argument degrade rule (spec.md §3): a "_sec"
	// restriction given exactly one argument is stored as an exception of
	// its non-secure pair instead.
	if cmd.Meta.IsSecureVariant && cmd.Meta.SecurePair != "" && len(args) == 1 {
		if pairMeta, ok := behavior.Lookup(cmd.Meta.SecurePair); ok {
			cmd.Behavior = cmd.Meta.SecurePair
			cmd.Meta = pairMeta
		}
	}
	return cmd, true
}
