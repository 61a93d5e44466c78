package wm

// These constants come from /usr/include/X11/keysymdef.h and XF86keysym.h.

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

const (
	xkISOLeftTab        = 0xfe20
	xkBackspace         = 0xff08
	xkTab               = 0xff09
	xkReturn            = 0xff0d
	xkEscape            = 0xff1b
	xkHome              = 0xff50
	xkLeft              = 0xff51
	xkUp                = 0xff52
	xkRight             = 0xff53
	xkDown              = 0xff54
	xkPageUp            = 0xff55
	xkPageDown          = 0xff56
	xkEnd               = 0xff57
	xkPrint             = 0xff61
	xkKPAdd             = 0xffab
	xkKPSubtract        = 0xffad
	xkF1                = 0xffbe
	xkDelete            = 0xffff
	xkAudioLowerVolume  = 0x1008ff11
	xkAudioMute         = 0x1008ff12
	xkAudioRaiseVolume  = 0x1008ff13
	xkAudioPlay         = 0x1008ff14
	xkAudioPrev         = 0x1008ff16
	xkAudioNext         = 0x1008ff17
	xkMonBrightnessUp   = 0x1008ff02
	xkMonBrightnessDown = 0x1008ff03
)

// keysymNames maps the names used in key chords to keysyms. Lower case
// letters and digits are their own ASCII values and are not listed.
var keysymNames = map[string]xp.Keysym{
	"space":        ' ',
	"exclam":       '!',
	"apostrophe":   '\'',
	"comma":        ',',
	"minus":        '-',
	"period":       '.',
	"slash":        '/',
	"semicolon":    ';',
	"equal":        '=',
	"plus":         '+',
	"bracketleft":  '[',
	"bracketright": ']',
	"backslash":    '\\',
	"grave":        '`',

	"ISO_Left_Tab": xkISOLeftTab,
	"BackSpace":    xkBackspace,
	"Tab":          xkTab,
	"Return":       xkReturn,
	"Escape":       xkEscape,
	"Home":         xkHome,
	"Left":         xkLeft,
	"Up":           xkUp,
	"Right":        xkRight,
	"Down":         xkDown,
	"Page_Up":      xkPageUp,
	"Page_Down":    xkPageDown,
	"End":          xkEnd,
	"Print":        xkPrint,
	"KP_Add":       xkKPAdd,
	"KP_Subtract":  xkKPSubtract,
	"Delete":       xkDelete,

	"XF86AudioLowerVolume":  xkAudioLowerVolume,
	"XF86AudioMute":         xkAudioMute,
	"XF86AudioRaiseVolume":  xkAudioRaiseVolume,
	"XF86AudioPlay":         xkAudioPlay,
	"XF86AudioPrev":         xkAudioPrev,
	"XF86AudioNext":         xkAudioNext,
	"XF86MonBrightnessUp":   xkMonBrightnessUp,
	"XF86MonBrightnessDown": xkMonBrightnessDown,
}

func init() {
	for i := 0; i < 12; i++ {
		keysymNames[fkeyName(i)] = xp.Keysym(xkF1 + i)
	}
}

func fkeyName(i int) string {
	if i < 9 {
		return "F" + string(rune('1'+i))
	}
	return "F1" + string(rune('0'+i-9))
}

func lookupKeysym(name string) (xp.Keysym, bool) {
	if len(name) == 1 {
		c := name[0]
		if 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
			return xp.Keysym(c), true
		}
	}
	k, ok := keysymNames[name]
	return k, ok
}

func keysymString(keysym xp.Keysym) string {
	if 'a' <= keysym && keysym <= 'z' || '0' <= keysym && keysym <= '9' {
		return string(rune(keysym))
	}
	for name, k := range keysymNames {
		if k == keysym {
			return name
		}
	}
	return "UnknownKeysym"
}
