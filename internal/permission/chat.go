package permission

import "rlv/internal/rlvconst"

// CanSendChat reports whether a channel-0 chat message may be said, per
// spec.md §4.5's "Chat on channel 0" paragraph.
func (e *Evaluator) CanSendChat(message string) bool {
	if !e.IsRestricted("sendchat") {
		return true
	}
	if rlvconst.IsEmote(message) {
		return !e.IsRestricted("emote")
	}
	return rlvconst.PassesChatFilter(message)
}

// CanReceiveChat composes recvchat/recvchat_sec/recvchatfrom against a
// speaking avatar's uuid, with the same emote carve-out as CanSendChat: an
// emote from a blocked speaker still gets through unless emote itself is
// restricted (spec.md §4.3, §8 scenario 4).
func (e *Evaluator) CanReceiveChat(message string, speakerID string) bool {
	if rlvconst.IsEmote(message) {
		return !e.IsRestricted("emote")
	}
	return e.CanInteractWith("recvchat", "recvchat_sec", "recvchatfrom", speakerID)
}

// CanSendIM composes sendim/sendim_sec/sendimto against a recipient uuid or
// group name ("allgroups" wildcard supported, spec.md §4.3).
func (e *Evaluator) CanSendIM(target string) bool {
	return e.CanInteractWith("sendim", "sendim_sec", "sendimto", target)
}

// CanReceiveIM is CanSendIM's counterpart for inbound instant messages.
func (e *Evaluator) CanReceiveIM(senderID string) bool {
	return e.CanInteractWith("recvim", "recvim_sec", "recvimfrom", senderID)
}

// CanStartIM composes startim/startimto against a recipient uuid.
func (e *Evaluator) CanStartIM(target string) bool {
	return e.CanInteractWith("startim", "", "startimto", target)
}

// CanTpLure composes tplure/tplure_sec against the lure sender's uuid.
func (e *Evaluator) CanTpLure(senderID string) bool {
	return e.CanInteractWith("tplure", "tplure_sec", "", senderID)
}

// CanAcceptTpLure reports the one-sided accepttp exception (spec.md §4.3).
func (e *Evaluator) CanAcceptTpLure(senderID string) bool {
	return e.HasExceptionFor("accepttp", senderID)
}

// CanTpRequest composes tprequest/tprequest_sec against the requester's
// uuid.
func (e *Evaluator) CanTpRequest(requesterID string) bool {
	return e.CanInteractWith("tprequest", "tprequest_sec", "", requesterID)
}

// CanAcceptTpRequest reports the one-sided accepttprequest exception.
func (e *Evaluator) CanAcceptTpRequest(requesterID string) bool {
	return e.HasExceptionFor("accepttprequest", requesterID)
}

// CanShare composes share/share_sec against a recipient uuid or group.
func (e *Evaluator) CanShare(target string) bool {
	return e.CanInteractWith("share", "share_sec", "", target)
}

// CanShowNamesFor composes shownames/shownames_sec against a uuid.
func (e *Evaluator) CanShowNamesFor(avatarID string) bool {
	return e.CanInteractWith("shownames", "shownames_sec", "", avatarID)
}

// CanShowNameTags reports the one-sided shownametags exception.
func (e *Evaluator) CanShowNameTags(avatarID string) bool {
	if !e.IsRestricted("shownametags") {
		return true
	}
	return e.HasExceptionFor("shownametags", avatarID)
}

// CanEdit reports whether a world object may be edited, with an optional
// per-object exception (spec.md §4.3).
func (e *Evaluator) CanEdit(objectPrimID string) bool {
	if e.IsRestricted("editworld") {
		return false
	}
	if !e.IsRestricted("edit") {
		return true
	}
	return e.HasExceptionFor("edit", objectPrimID)
}
