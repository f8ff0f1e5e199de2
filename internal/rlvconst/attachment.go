package rlvconst

import (
	"regexp"
	"strings"
)

// AttachPoint is one of the fixed avatar attachment slots.
type AttachPoint int

const (
	AttachPointDefault AttachPoint = iota
	AttachChest
	AttachHead
	AttachLeftShoulder
	AttachRightShoulder
	AttachLeftHand
	AttachRightHand
	AttachLeftFoot
	AttachRightFoot
	AttachSpine
	AttachPelvis
	AttachMouth
	AttachChin
	AttachLeftEar
	AttachRightEar
	AttachLeftEyeball
	AttachRightEyeball
	AttachNose
	AttachRightUpperArm
	AttachRightForearm
	AttachLeftUpperArm
	AttachLeftForearm
	AttachRightHip
	AttachRightUpperLeg
	AttachRightLowerLeg
	AttachLeftHip
	AttachLeftUpperLeg
	AttachLeftLowerLeg
	AttachStomach
	AttachLeftPec
	AttachRightPec
	AttachHudCenter2
	AttachHudTopRight
	AttachHudTop
	AttachHudTopLeft
	AttachHudCenter
	AttachHudBottomLeft
	AttachHudBottom
	AttachHudBottomRight
	AttachNeck
	AttachAvatarCenter
)

var attachNames = map[AttachPoint]string{
	AttachPointDefault:   "default",
	AttachChest:          "chest",
	AttachHead:           "head",
	AttachLeftShoulder:   "left shoulder",
	AttachRightShoulder:  "right shoulder",
	AttachLeftHand:       "left hand",
	AttachRightHand:      "right hand",
	AttachLeftFoot:       "left foot",
	AttachRightFoot:      "right foot",
	AttachSpine:          "spine",
	AttachPelvis:         "pelvis",
	AttachMouth:          "mouth",
	AttachChin:           "chin",
	AttachLeftEar:        "left ear",
	AttachRightEar:       "right ear",
	AttachLeftEyeball:    "left eyeball",
	AttachRightEyeball:   "right eyeball",
	AttachNose:           "nose",
	AttachRightUpperArm:  "r upper arm",
	AttachRightForearm:   "r forearm",
	AttachLeftUpperArm:   "l upper arm",
	AttachLeftForearm:    "l forearm",
	AttachRightHip:       "right hip",
	AttachRightUpperLeg:  "r upper leg",
	AttachRightLowerLeg:  "r lower leg",
	AttachLeftHip:        "left hip",
	AttachLeftUpperLeg:   "l upper leg",
	AttachLeftLowerLeg:   "l lower leg",
	AttachStomach:        "stomach",
	AttachLeftPec:        "left pec",
	AttachRightPec:       "right pec",
	AttachHudCenter2:     "hud center 2",
	AttachHudTopRight:    "hud top right",
	AttachHudTop:         "hud top",
	AttachHudTopLeft:     "hud top left",
	AttachHudCenter:      "hud center",
	AttachHudBottomLeft:  "hud bottom left",
	AttachHudBottom:      "hud bottom",
	AttachHudBottomRight: "hud bottom right",
	AttachNeck:           "neck",
	AttachAvatarCenter:   "avatar center",
}

// attachAliases maps extra names onto the canonical points above; it is
// empty. Case, underscore and spacing variants are handled by
// normalizeAttachName instead.
var attachAliases = map[string]AttachPoint{}

var attachByName map[string]AttachPoint

func init() {
	attachByName = make(map[string]AttachPoint, len(attachNames))
	for point, name := range attachNames {
		attachByName[normalizeAttachName(name)] = point
	}
	for alias, point := range attachAliases {
		attachByName[normalizeAttachName(alias)] = point
	}
}

func normalizeAttachName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// String renders the canonical attachment-point name.
func (a AttachPoint) String() string {
	if name, ok := attachNames[a]; ok {
		return name
	}
	return "default"
}

// IsHud reports whether the point is one of the HUD slots (spec.md §4.3,
// touch-by-location dispatch).
func (a AttachPoint) IsHud() bool {
	switch a {
	case AttachHudCenter2, AttachHudTopRight, AttachHudTop, AttachHudTopLeft,
		AttachHudCenter, AttachHudBottomLeft, AttachHudBottom, AttachHudBottomRight:
		return true
	default:
		return false
	}
}

// LookupAttachPoint resolves a case-insensitive attachment-point name.
func LookupAttachPoint(name string) (AttachPoint, bool) {
	p, ok := attachByName[normalizeAttachName(name)]
	return p, ok
}

// AllAttachPoints returns every attachment point in enum order, for
// building getattach's bitmap reply (spec.md §4.6).
func AllAttachPoints() []AttachPoint {
	out := make([]AttachPoint, 0, len(attachNames))
	for p := AttachPointDefault; p <= AttachAvatarCenter; p++ {
		if _, ok := attachNames[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// tagPattern matches "(tag)" groups embedded in an inventory item name; the
// last recognized tag in a name wins (spec.md §3).
var tagPattern = regexp.MustCompile(`\(([^()]+)\)`)

// ExtractAttachPoint scans an item name for the last "(tag)" group that
// resolves to a known attachment point. ok is false when no tag in the name
// names a recognized point.
func ExtractAttachPoint(itemName string) (point AttachPoint, ok bool) {
	matches := tagPattern.FindAllStringSubmatch(itemName, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if p, found := LookupAttachPoint(matches[i][1]); found {
			return p, true
		}
	}
	return AttachPointDefault, false
}
