package behavior

// noArg registers a no-option restriction toggle.
func noArg(k Kind) {
	register(Meta{Kind: k, Grammar: GrammarNone, Role: RoleRestriction})
}

// exceptionArg registers a restriction whose optional argument, when
// present, makes the restriction an exception (spec.md §3(b)).
func exceptionArg(k Kind, grammar OptionGrammar) {
	register(Meta{Kind: k, Grammar: grammar, Role: RoleRestriction, AdmitsException: true})
}

// plainArg registers a restriction with a required or optional typed
// argument that is not itself an exception form.
func plainArg(k Kind, grammar OptionGrammar) {
	register(Meta{Kind: k, Grammar: grammar, Role: RoleRestriction})
}

// securePair links a normal kind to its "_sec" counterpart.
func securePair(normal, secure Kind) {
	n := registry[normal]
	n.SecurePair = secure
	registry[normal] = n

	s := registry[secure]
	s.SecurePair = normal
	s.IsSecureVariant = true
	registry[secure] = s
}

// fromToPair links a normal kind to its directed "from"/"to" counterpart.
func fromToPair(normal, fromTo Kind) {
	n := registry[normal]
	n.FromToPair = fromTo
	registry[normal] = n

	f := registry[fromTo]
	f.FromToPair = normal
	f.IsFromToVariant = true
	registry[fromTo] = f
}

func init() {
	// Movement — no-arg toggles.
	for _, k := range []Kind{"fly", "jump", "temprun", "alwaysrun", "unsit", "sit", "standtp"} {
		noArg(k)
	}

	// Teleport.
	noArg("tplm")
	noArg("tploc")
	plainArg("sittp", GrammarFloatOptional)
	plainArg("tplocal", GrammarFloatOptional)
	exceptionArg("tplure", GrammarUUIDOptional)
	plainArg("tplure_sec", GrammarUUIDOptional)
	securePair("tplure", "tplure_sec")
	exceptionArg("tprequest", GrammarUUIDOptional)
	plainArg("tprequest_sec", GrammarUUIDOptional)
	securePair("tprequest", "tprequest_sec")
	exceptionArg("accepttp", GrammarUUIDOptional)
	exceptionArg("accepttprequest", GrammarUUIDOptional)

	// Chat.
	for _, k := range []Kind{"sendchat", "chatshout", "chatnormal", "chatwhisper", "emote", "sendgesture"} {
		noArg(k)
	}
	plainArg("redirchat", GrammarIntRequired)
	plainArg("rediremote", GrammarIntRequired)

	exceptionArg("recvchat", GrammarUUIDOptional)
	plainArg("recvchat_sec", GrammarUUIDOptional)
	securePair("recvchat", "recvchat_sec")
	plainArg("recvchatfrom", GrammarUUID)
	fromToPair("recvchat", "recvchatfrom")

	exceptionArg("recvemote", GrammarUUIDOptional)
	plainArg("recvemote_sec", GrammarUUIDOptional)
	securePair("recvemote", "recvemote_sec")
	plainArg("recvemotefrom", GrammarUUID)
	fromToPair("recvemote", "recvemotefrom")

	exceptionArg("sendchannel", GrammarIntOptional)
	plainArg("sendchannel_sec", GrammarIntOptional)
	securePair("sendchannel", "sendchannel_sec")
	exceptionArg("sendchannel_except", GrammarIntRequired)

	// IM.
	exceptionArg("sendim", GrammarUUIDOrString)
	plainArg("sendim_sec", GrammarUUIDOrString)
	securePair("sendim", "sendim_sec")
	plainArg("sendimto", GrammarUUIDOrString)
	fromToPair("sendim", "sendimto")

	exceptionArg("recvim", GrammarUUIDOrString)
	plainArg("recvim_sec", GrammarUUIDOrString)
	securePair("recvim", "recvim_sec")
	plainArg("recvimfrom", GrammarUUIDOrString)
	fromToPair("recvim", "recvimfrom")

	exceptionArg("startim", GrammarUUIDOptional)
	plainArg("startimto", GrammarUUID)
	fromToPair("startim", "startimto")

	// Inventory/outfit attach constraints.
	exceptionArg("detach", GrammarAttachPoint)
	exceptionArg("addattach", GrammarAttachPoint)
	exceptionArg("remattach", GrammarAttachPoint)
	exceptionArg("addoutfit", GrammarPathOrLayer)
	exceptionArg("remoutfit", GrammarPathOrLayer)
	for _, k := range []Kind{"defaultwear", "unsharedwear", "unsharedunwear", "sharedwear", "sharedunwear"} {
		noArg(k)
	}

	// Folder locks.
	exceptionArg("detachthis", GrammarPathOrLayer)
	exceptionArg("detachallthis", GrammarPathOrLayer)
	exceptionArg("attachthis", GrammarPathOrLayer)
	exceptionArg("attachallthis", GrammarPathOrLayer)
	plainArg("detachthis_except", GrammarPath)
	plainArg("detachallthis_except", GrammarPath)
	plainArg("attachthis_except", GrammarPath)
	plainArg("attachallthis_except", GrammarPath)

	// Touch.
	noArg("touchall")
	exceptionArg("touchworld", GrammarUUIDOptional)
	plainArg("touchthis", GrammarUUID)
	for _, k := range []Kind{"touchme", "touchattach", "touchattachself", "interact"} {
		noArg(k)
	}
	exceptionArg("touchattachother", GrammarUUIDOptional)
	exceptionArg("touchhud", GrammarUUIDOptional)
	plainArg("touchfar", GrammarFloatOptional)

	// Visibility.
	for _, k := range []Kind{"showinv", "shownearby", "showloc", "showworldmap", "showminimap",
		"showhovertextall", "showhovertexthud", "showhovertextworld"} {
		noArg(k)
	}
	exceptionArg("shownames", GrammarUUIDOptional)
	plainArg("shownames_sec", GrammarUUIDOptional)
	securePair("shownames", "shownames_sec")
	exceptionArg("shownametags", GrammarUUIDOptional)
	plainArg("showhovertext", GrammarUUID)

	// Edit/Rez.
	exceptionArg("edit", GrammarUUIDOptional)
	plainArg("editobj", GrammarUUID)
	for _, k := range []Kind{"editworld", "editattach", "rez"} {
		noArg(k)
	}

	// Env/Debug/Group.
	for _, k := range []Kind{"setenv", "setdebug", "setgroup", "allowidle", "permissive"} {
		noArg(k)
	}
	exceptionArg("share", GrammarUUIDOptional)
	plainArg("share_sec", GrammarUUIDOptional)
	securePair("share", "share_sec")

	// Camera.
	plainArg("setcam_avdistmin", GrammarFloatRequired)
	plainArg("setcam_avdistmax", GrammarFloatRequired)
	plainArg("setcam_zoommin", GrammarFloatRequired)
	plainArg("setcam_zoommax", GrammarFloatRequired)
	plainArg("setcam_fovmin", GrammarFloatRequired)
	plainArg("setcam_fovmax", GrammarFloatRequired)
	noArg("setcam_unlock")
	plainArg("setcam_textures", GrammarUUIDOptional)
	plainArg("setcam_drawcolor", GrammarColorTriple)
	plainArg("camdrawmin", GrammarFloatRequired)
	plainArg("camdrawmax", GrammarFloatRequired)

	// Notifications.
	plainArg("notify", GrammarNotify)

	// Forced-action-only kinds that never have a y/n restriction form still
	// get a registry entry, with RoleForcedAction; their grammar is irrelevant to restriction
	// parsing since =force bypasses it (internal/action parses its own
	// composite option string).
	for _, k := range []Kind{
		"setrot", "adjustheight", "setcam_fov", "tpto", "sitground",
		"detachme", "detachall", "attach", "attachall", "attachover",
		"attachallover", "attachoverorreplace", "attachalloverorreplace",
		"addoutfitall",
	} {
		register(Meta{Kind: k, Grammar: GrammarNone, Role: RoleForcedAction})
	}
}
