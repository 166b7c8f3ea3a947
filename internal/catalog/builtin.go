package catalog

// Built-in sounds map to freedesktop sound theme files, which are present on
// most Linux desktops under /usr/share/sounds/freedesktop/stereo.
var builtinSounds = []SoundDef{
	{ID: "error", File: "dialog-error.oga"},
	{ID: "warning", File: "dialog-warning.oga"},
	{ID: "info", File: "dialog-information.oga"},
	{ID: "complete", File: "complete.oga"},
	{ID: "bell", File: "bell.oga"},
	{ID: "message", File: "message.oga"},
	{ID: "attention", File: "message-new-instant.oga"},
	{ID: "device-added", File: "device-added.oga"},
	{ID: "device-removed", File: "device-removed.oga"},
}

var builtinCues = []CueDef{
	{ID: "error", Name: "Error", Sound: "error"},
	{ID: "warning", Name: "Warning", Sound: "warning"},
	{ID: "task-completed", Name: "Task Completed", Sound: "complete"},
	{ID: "task-failed", Name: "Task Failed", Sound: "error"},
	{ID: "message-received", Name: "Message Received", Sound: "message"},
	{ID: "attention-required", Name: "Attention Required", Sound: "attention"},
	{ID: "progress-done", Name: "Progress Done", Sound: "complete"},
	{ID: "terminal-bell", Name: "Terminal Bell", Sound: "bell"},
	{ID: "device-connected", Name: "Device Connected", Sound: "device-added"},
	{ID: "device-disconnected", Name: "Device Disconnected", Sound: "device-removed"},
}

// Builtin returns a fresh catalog of the built-in sounds and cues.
func Builtin() *Catalog {
	return New(builtinSounds, builtinCues)
}
