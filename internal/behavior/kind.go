// Package behavior is the RLV behavior-kind registry: the closed
// enumeration of ~120 behaviors, their option grammars, and the
// alias/secure/from-to relationships spec.md §3–§4.3 describe.
package behavior

// Kind is a canonicalized behavior name. Aliases collapse onto one of these
// at parse time (spec.md §3).
type Kind string

// Role classifies what a behavior kind is used for, per spec.md §3(e).
type Role int

const (
	RoleRestriction Role = iota
	RoleForcedAction
	RoleGetter
	RoleNotifier
)

// OptionGrammar names the shape of a behavior's option argument, per
// spec.md §4.1's grammar table.
type OptionGrammar int

const (
	GrammarNone OptionGrammar = iota
	GrammarFloatRequired
	GrammarFloatOptional
	GrammarIntRequired
	GrammarIntOptional
	GrammarUUID
	GrammarUUIDOrString
	GrammarUUIDOptional
	GrammarWearableType
	GrammarAttachPoint
	GrammarPathOrLayer
	GrammarNotify
	GrammarColorTriple
	GrammarPath
)

// Meta is the metadata attached to every behavior kind (spec.md §3).
type Meta struct {
	Kind            Kind
	Grammar         OptionGrammar
	Role            Role
	AdmitsException bool   // args present => exception, per spec.md §3(b)
	SecurePair      Kind   // e.g. SendIm's secure pair is SendImSec
	FromToPair      Kind   // e.g. SendIm's from/to pair is SendImTo
	IsSecureVariant bool   // this kind IS a "_sec" variant
	IsFromToVariant bool   // this kind IS a "_to"/"from" variant
}

// registry is populated in tables.go via init().
var registry = map[Kind]Meta{}

// aliases maps an alternate/legacy spelling to its canonical Kind.
var aliases = map[string]Kind{
	"fartouch":    "touchfar",
	"camdistmax":  "setcam_avdistmax",
	"camunlock":   "setcam_unlock",
	"camtextures": "setcam_textures",
	"camdistmin":  "setcam_avdistmin",
}

func register(m Meta) {
	registry[m.Kind] = m
}

// Canonicalize resolves a raw wire-form behavior name (already lowercased
// by the caller) to its canonical Kind and metadata. ok is false for a
// completely unknown behavior.
func Canonicalize(raw string) (Kind, Meta, bool) {
	name := raw
	if canon, isAlias := aliases[name]; isAlias {
		name = string(canon)
	}
	meta, ok := registry[Kind(name)]
	if !ok {
		return "", Meta{}, false
	}
	return meta.Kind, meta, true
}

// Lookup fetches metadata for an already-canonical Kind.
func Lookup(k Kind) (Meta, bool) {
	meta, ok := registry[k]
	return meta, ok
}

// All returns every registered kind, for enumeration.
func All() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}
