package keyboard

import "unicode/utf8"

// robotgoKeyByName maps the symbolic key names accepted in bindings to
// the tokens the robotgo backend expects. Single characters bypass the
// table and are passed to the backend as they are.
var robotgoKeyByName = map[string]string{
	"up":           "up",
	"down":         "down",
	"left":         "left",
	"right":        "right",
	"space":        "space",
	"enter":        "enter",
	"esc":          "esc",
	"tab":          "tab",
	"backspace":    "backspace",
	"delete":       "delete",
	"home":         "home",
	"end":          "end",
	"page_up":      "pageup",
	"page_down":    "pagedown",
	"insert":       "insert",
	"menu":         "menu",
	"caps_lock":    "capslock",
	"print_screen": "printscreen",
	"shift":        "shift",
	"shift_l":      "lshift",
	"shift_r":      "rshift",
	"ctrl":         "ctrl",
	"ctrl_l":       "lctrl",
	"ctrl_r":       "rctrl",
	"alt":          "alt",
	"alt_l":        "lalt",
	"alt_r":        "ralt",
	"cmd":          "cmd",
	"cmd_l":        "lcmd",
	"cmd_r":        "rcmd",
	"f1":           "f1",
	"f2":           "f2",
	"f3":           "f3",
	"f4":           "f4",
	"f5":           "f5",
	"f6":           "f6",
	"f7":           "f7",
	"f8":           "f8",
	"f9":           "f9",
	"f10":          "f10",
	"f11":          "f11",
	"f12":          "f12",
}

// Recognized reports whether a key can be sent by the sink: any single
// character, the empty string meaning no action, or one of the known
// symbolic names.
func Recognized(key string) bool {
	if utf8.RuneCountInString(key) <= 1 {
		return true
	}
	_, ok := robotgoKeyByName[key]
	return ok
}

// robotgoKey translates a bound key into a robotgo token. Unrecognized
// names pass through unchanged; validation upstream keeps them from
// getting here.
func robotgoKey(key string) string {
	if utf8.RuneCountInString(key) <= 1 {
		return key
	}
	if token, ok := robotgoKeyByName[key]; ok {
		return token
	}
	return key
}
