package main

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/wm"
)

// keyChords returns the chords a key press can stand for: the unshifted
// keysym with every held modifier, then, if Shift is held, the shifted
// keysym without Shift. "A-plus" is typed as Alt-Shift-equal on most
// layouts.
func keyChords(detail xp.Keycode, state uint16) []wm.Chord {
	state &= wm.ModMask
	cs := []wm.Chord{{Mask: state, Keysym: keysyms[detail][0]}}
	if state&xp.ModMaskShift != 0 {
		if k := keysyms[detail][1]; k != 0 && k != keysyms[detail][0] {
			cs = append(cs, wm.Chord{Mask: state &^ xp.ModMaskShift, Keysym: k})
		}
	}
	return cs
}

func handleKeyPress(st *wm.State, b wm.Bindings, e xp.KeyPressEvent) {
	for _, c := range keyChords(e.Detail, e.State) {
		if b.Dispatch(st, c) {
			return
		}
	}
	st.Log.Trace("unbound key", "keycode", e.Detail, "state", e.State)
}

// handleEnterNotify makes focus follow the mouse.
func handleEnterNotify(st *wm.State, e xp.EnterNotifyEvent) {
	if e.Mode != xp.NotifyModeNormal {
		return
	}
	cs := st.Clients
	if w, ok := cs.FocusedWindow(); ok && w == e.Event {
		return
	}
	if !cs.FocusWindow(e.Event) {
		return
	}
	if err := st.Refresh(); err != nil {
		st.Log.Error("refresh after focus change", "err", err)
	}
}
