package rlvparser

import (
	"strconv"
	"strings"

	"rlv/internal/behavior"
	"rlv/internal/rlvconst"
)

// parseOption parses a restriction's option string according to its
// behavior's grammar (spec.md §4.1's table), returning the typed argument
// sequence in canonical string form for storage and equality. An empty
// option is legal for every "optional" grammar and for grammars that admit
// an exception-widened empty form; it is illegal for "required" grammars.
func parseOption(meta behavior.Meta, option string) ([]string, bool) {
	option = strings.TrimSpace(option)

	switch meta.Grammar {
	case behavior.GrammarNone:
		if option != "" {
			return nil, false
		}
		return nil, true

	case behavior.GrammarFloatRequired:
		f, ok := parseFloat(option)
		if !ok {
			return nil, false
		}
		if (meta.Kind == "camdrawmin" || meta.Kind == "camdrawmax") && f < 0.40 {
			return nil, false
		}
		return []string{formatFloat(f)}, true

	case behavior.GrammarFloatOptional:
		if option == "" {
			return nil, true
		}
		f, ok := parseFloat(option)
		if !ok {
			return nil, false
		}
		return []string{formatFloat(f)}, true

	case behavior.GrammarIntRequired:
		n, err := strconv.Atoi(option)
		if err != nil {
			return nil, false
		}
		return []string{strconv.Itoa(n)}, true

	case behavior.GrammarIntOptional:
		if option == "" {
			return nil, true
		}
		n, err := strconv.Atoi(option)
		if err != nil {
			return nil, false
		}
		return []string{strconv.Itoa(n)}, true

	case behavior.GrammarUUID:
		if !isUUID(option) {
			return nil, false
		}
		return []string{strings.ToLower(option)}, true

	case behavior.GrammarUUIDOptional:
		if option == "" {
			return nil, true
		}
		if !isUUID(option) {
			return nil, false
		}
		return []string{strings.ToLower(option)}, true

	case behavior.GrammarUUIDOrString:
		if option == "" {
			return nil, true
		}
		if strings.EqualFold(option, "allgroups") {
			return []string{"allgroups"}, true
		}
		if isUUID(option) {
			return []string{strings.ToLower(option)}, true
		}
		return []string{option}, true

	case behavior.GrammarWearableType:
		if option == "" {
			return nil, true
		}
		w, ok := rlvconst.LookupWearable(option)
		if !ok {
			return nil, false
		}
		return []string{w.String()}, true

	case behavior.GrammarAttachPoint:
		if option == "" {
			return nil, true
		}
		p, ok := rlvconst.LookupAttachPoint(option)
		if !ok {
			return nil, false
		}
		return []string{p.String()}, true

	case behavior.GrammarPathOrLayer:
		if option == "" {
			return nil, true
		}
		if w, ok := rlvconst.LookupWearable(option); ok {
			return []string{"wearable:" + w.String()}, true
		}
		if p, ok := rlvconst.LookupAttachPoint(option); ok {
			return []string{"attachpt:" + p.String()}, true
		}
		return []string{"path:" + option}, true

	case behavior.GrammarPath:
		if option == "" {
			return nil, false
		}
		return []string{"path:" + option}, true

	case behavior.GrammarNotify:
		if option == "" {
			return nil, false
		}
		parts := strings.SplitN(option, ";", 2)
		ch, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, false
		}
		if len(parts) == 2 {
			return []string{strconv.Itoa(ch), parts[1]}, true
		}
		return []string{strconv.Itoa(ch)}, true

	case behavior.GrammarColorTriple:
		parts := strings.Split(option, ";")
		if len(parts) != 3 {
			return nil, false
		}
		out := make([]string, 3)
		for i, p := range parts {
			f, ok := parseFloat(strings.TrimSpace(p))
			if !ok {
				return nil, false
			}
			if f < 0 {
				f = 0
			}
			if f > 1 {
				f = 1
			}
			out[i] = formatFloat(f)
		}
		return out, true

	default:
		return nil, option == ""
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// isUUID validates the standard 8-4-4-4-12 hex-digit layout.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, ch := range s {
		switch i {
		case 8, 13, 18, 23:
			if ch != '-' {
				return false
			}
		default:
			if !isHex(byte(ch)) {
				return false
			}
		}
	}
	return true
}

func isHex(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
