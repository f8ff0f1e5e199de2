package permission

// These are the plain no-arg-toggle queries behind the forced-action
// executor's permission checks (spec.md §4.7): each is just "is the kind
// restricted", given a name of its own because callers read better calling
// CanSit() than IsRestricted("sit").
func (e *Evaluator) CanSit() bool        { return !e.IsRestricted("sit") }
func (e *Evaluator) CanUnsit() bool      { return !e.IsRestricted("unsit") }
func (e *Evaluator) CanStandTp() bool    { return !e.IsRestricted("standtp") }
func (e *Evaluator) CanTpLoc() bool      { return !e.IsRestricted("tploc") }
func (e *Evaluator) CanTpLm() bool       { return !e.IsRestricted("tplm") }
func (e *Evaluator) CanFly() bool        { return !e.IsRestricted("fly") }
func (e *Evaluator) CanJump() bool       { return !e.IsRestricted("jump") }
func (e *Evaluator) CanRez() bool        { return !e.IsRestricted("rez") }
func (e *Evaluator) CanEditObj() bool    { return !e.IsRestricted("editobj") }
func (e *Evaluator) CanEditWorld() bool  { return !e.IsRestricted("editworld") }
func (e *Evaluator) CanChatShout() bool  { return !e.IsRestricted("chatshout") }
func (e *Evaluator) CanChatWhisper() bool { return !e.IsRestricted("chatwhisper") }
func (e *Evaluator) CanSendGesture() bool { return !e.IsRestricted("sendgesture") }
func (e *Evaluator) CanShowInv() bool    { return !e.IsRestricted("showinv") }
func (e *Evaluator) CanShowLoc() bool    { return !e.IsRestricted("showloc") }
func (e *Evaluator) CanShowWorldMap() bool { return !e.IsRestricted("showworldmap") }
func (e *Evaluator) CanShowMiniMap() bool  { return !e.IsRestricted("showminimap") }
func (e *Evaluator) CanShowNearby() bool   { return !e.IsRestricted("shownearby") }

// CameraLocked reports whether any @setcam_unlock restriction is active
// (spec.md §4.5's "setcam_fov requires camera not locked").
func (e *Evaluator) CameraLocked() bool {
	return e.IsRestricted("setcam_unlock")
}
