// Package permission is the pure permission evaluator (spec.md §4.5): every
// query is a function of restriction-store state (plus, for a handful of
// queries, inventory/lock-map context passed in by the caller). Grounded on
// the teacher's internal/evaluator package's pure-dispatch-by-kind shape —
// here dispatch is by behavior kind instead of AST node kind.
package permission

import (
	"strconv"
	"strings"

	"rlv/internal/behavior"
	"rlv/internal/restriction"
)

// Evaluator answers permission queries against a restriction.Store. It
// holds no mutable state of its own.
type Evaluator struct {
	store *restriction.Store
}

// New wraps a restriction.Store for querying.
func New(store *restriction.Store) *Evaluator {
	return &Evaluator{store: store}
}

// IsRestricted reports whether any live restriction of kind exists,
// regardless of issuer or arguments — the simple no-arg-toggle query used
// by behaviors like fly/jump/sit/edit/rez (spec.md §4.3's "no-arg
// toggles").
func (e *Evaluator) IsRestricted(kind behavior.Kind) bool {
	return len(e.store.Snapshot(kind, "")) > 0
}

// IsPermissiveMode reports spec.md §3/§4.5's global toggle: on unless at
// least one @permissive restriction is active.
func (e *Evaluator) IsPermissiveMode() bool {
	return !e.IsRestricted("permissive")
}

// CanInteractWith implements the three-phase secure-restriction resolution
// of spec.md §4.5 for a (normal, secure, fromTo) behavior-kind triplet
// against a call-site target (a uuid, or a group name/"allgroups"). Pass ""
// for secureKind or fromToKind to skip the phase for a family that has no
// such pair (e.g. "edit", which has neither).
func (e *Evaluator) CanInteractWith(normalKind, secureKind, fromToKind behavior.Kind, target string) bool {
	if fromToKind != "" {
		for _, r := range e.store.Snapshot(fromToKind, "") {
			if namesTarget(r, target) {
				return false // directed deny
			}
		}
	}

	if secureKind != "" {
		for _, r := range e.store.Snapshot(secureKind, "") {
			if !e.hasExceptionFromIssuer(normalKind, r.IssuerPrimID, target) {
				return false // secure deny
			}
		}
	}

	permissive := e.IsPermissiveMode()
	for _, r := range e.store.Snapshot(normalKind, "") {
		if len(r.Args) > 0 {
			continue // this is itself an exception, not a restriction
		}
		if !e.hasPermittingException(normalKind, r.IssuerPrimID, target, permissive) {
			return false // normal deny
		}
	}

	return true
}

// hasExceptionFromIssuer reports whether issuer has posted an exception of
// kind naming target (used by the secure-deny phase, which requires
// same-issuer pairing regardless of permissive mode).
func (e *Evaluator) hasExceptionFromIssuer(kind behavior.Kind, issuer, target string) bool {
	for _, r := range e.store.Snapshot(kind, issuer) {
		if len(r.Args) > 0 && namesTarget(r, target) {
			return true
		}
	}
	return false
}

// hasPermittingException reports whether some exception of kind names
// target and either permissive mode is on, or its issuer matches
// restrictionIssuer (used by the normal-deny phase).
func (e *Evaluator) hasPermittingException(kind behavior.Kind, restrictionIssuer, target string, permissive bool) bool {
	for _, r := range e.store.Snapshot(kind, "") {
		if len(r.Args) == 0 || !namesTarget(r, target) {
			continue
		}
		if permissive || r.IssuerPrimID == restrictionIssuer {
			return true
		}
	}
	return false
}

// HasExceptionFor reports whether any live exception of kind names target,
// from any issuer — used by one-sided families like accepttp/
// accepttprequest that have no normal/secure pairing to resolve.
func (e *Evaluator) HasExceptionFor(kind behavior.Kind, target string) bool {
	for _, r := range e.store.Snapshot(kind, "") {
		if len(r.Args) > 0 && namesTarget(r, target) {
			return true
		}
	}
	return false
}

// namesTarget reports whether a restriction's single argument names target:
// exact (case-insensitive) match, or the literal "allgroups" wildcard used
// by group-scoped families (spec.md §4.3).
func namesTarget(r restriction.Restriction, target string) bool {
	if len(r.Args) == 0 {
		return false
	}
	arg := r.Args[0]
	if strings.EqualFold(arg, "allgroups") {
		return true
	}
	return strings.EqualFold(arg, target)
}

// behaviorKindOf is a plain string-to-Kind conversion helper for call sites
// that build the kind name dynamically (e.g. picking between "addoutfit"
// and "remoutfit" at runtime).
func behaviorKindOf(s string) behavior.Kind { return behavior.Kind(s) }

// CanSitTp returns whether @sittp permits a teleport-while-sat and, if
// restricted, the resulting maximum distance: the minimum across
// restrictions carrying a value, or 1.5 if any restriction was posted with
// no value at all (spec.md §4.3, end-to-end scenario 1 in §8).
func (e *Evaluator) CanSitTp() (restricted bool, max float64) {
	return minFloatRestriction(e.store, "sittp", 1.5)
}

// CanTpLocal is CanSitTp's counterpart for @tplocal, whose no-arg default
// is 0.0 (spec.md §4.3).
func (e *Evaluator) CanTpLocal() (restricted bool, max float64) {
	return minFloatRestriction(e.store, "tplocal", 0.0)
}

// CanTouchFar is CanSitTp's counterpart for @touchfar/@fartouch.
func (e *Evaluator) CanTouchFar() (restricted bool, max float64) {
	return minFloatRestriction(e.store, "touchfar", 1.5)
}

func minFloatRestriction(store *restriction.Store, kind behavior.Kind, noArgDefault float64) (bool, float64) {
	list := store.Snapshot(kind, "")
	if len(list) == 0 {
		return false, 0
	}
	hasNoArg := false
	min := 0.0
	first := true
	for _, r := range list {
		if len(r.Args) == 0 {
			hasNoArg = true
			continue
		}
		f, err := strconv.ParseFloat(r.Args[0], 64)
		if err != nil {
			continue
		}
		if first || f < min {
			min = f
			first = false
		}
	}
	if first { // only no-arg restrictions were posted
		return true, noArgDefault
	}
	if hasNoArg && noArgDefault < min {
		return true, noArgDefault
	}
	return true, min
}

// CanSendChannel reports whether a channel-K (K != 0) private message may
// be sent, composing @sendchannel/@sendchannel_sec/@sendchannel_except
// (spec.md §4.3).
func (e *Evaluator) CanSendChannel(channel int) bool {
	target := strconv.Itoa(channel)
	return e.CanInteractWith("sendchannel", "sendchannel_sec", "", target) ||
		e.HasExceptionFor("sendchannel_except", target)
}
