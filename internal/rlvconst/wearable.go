// Package rlvconst holds the closed enumerations the RLV wire protocol is
// built on: wearable layers, attachment points, and the name-tag grammar
// items use to advertise where they want to be worn.
package rlvconst

import "strings"

// WearableType is one of the fixed clothing/body layers a shared-folder item
// can be worn as.
type WearableType int

const (
	WearableNone WearableType = iota
	WearableGloves
	WearableJacket
	WearablePants
	WearableShirt
	WearableShoes
	WearableSkirt
	WearableSocks
	WearableUnderpants
	WearableUndershirt
	WearableSkin
	WearableEyes
	WearableHair
	WearableShape
	WearableAlpha
	WearableTattoo
	WearablePhysics
)

// wearableOrder is the bit order used by @getoutfit's 16-digit bitmap
// (spec.md §4.6).
var wearableOrder = []WearableType{
	WearableGloves, WearableJacket, WearablePants, WearableShirt,
	WearableShoes, WearableSkirt, WearableSocks, WearableUnderpants,
	WearableUndershirt, WearableSkin, WearableEyes, WearableHair,
	WearableShape, WearableAlpha, WearableTattoo, WearablePhysics,
}

// WearableOrder returns the canonical bitmap order for @getoutfit.
func WearableOrder() []WearableType {
	out := make([]WearableType, len(wearableOrder))
	copy(out, wearableOrder)
	return out
}

var wearableNames = map[WearableType]string{
	WearableGloves:      "gloves",
	WearableJacket:      "jacket",
	WearablePants:       "pants",
	WearableShirt:       "shirt",
	WearableShoes:       "shoes",
	WearableSkirt:       "skirt",
	WearableSocks:       "socks",
	WearableUnderpants:  "underpants",
	WearableUndershirt:  "undershirt",
	WearableSkin:        "skin",
	WearableEyes:        "eyes",
	WearableHair:        "hair",
	WearableShape:       "shape",
	WearableAlpha:       "alpha",
	WearableTattoo:      "tattoo",
	WearablePhysics:     "physics",
}

var wearableByName map[string]WearableType

func init() {
	wearableByName = make(map[string]WearableType, len(wearableNames))
	for k, v := range wearableNames {
		wearableByName[v] = k
	}
}

// String renders the canonical lowercase name for a wearable type.
func (w WearableType) String() string {
	if name, ok := wearableNames[w]; ok {
		return name
	}
	return "none"
}

// LookupWearable resolves a case-insensitive wearable-type name. The second
// return is false for anything not in the closed enumeration.
func LookupWearable(name string) (WearableType, bool) {
	w, ok := wearableByName[strings.ToLower(strings.TrimSpace(name))]
	return w, ok
}

// AlwaysNonDetachable reports whether items worn on this layer can never be
// forcibly detached, regardless of restriction state (spec.md §4.7).
func (w WearableType) AlwaysNonDetachable() bool {
	switch w {
	case WearableSkin, WearableShape, WearableEyes, WearableHair:
		return true
	default:
		return false
	}
}
