package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/stackset"
)

// ManageRule applies to new windows whose WM_CLASS equals Class. Float, if
// set, makes the window float at that size; Workspace, if set, sends it to
// that tag instead of the current one.
type ManageRule struct {
	Class     string
	Float     *stackset.Float
	Workspace string
}

// Manage starts managing w and refreshes. Scratchpads get first pick.
func (st *State) Manage(w xp.Window, class string) error {
	cs := st.Clients
	if cs.Contains(w) {
		return nil
	}
	if st.Scratchpads.Claim(st, w, class) {
		st.Log.Debug("scratchpad claimed window", "window", windowString(w), "class", class)
		return st.Refresh()
	}
	tag := cs.CurrentTag()
	var float *stackset.Float
	for _, r := range st.Rules {
		if r.Class != class {
			continue
		}
		if r.Workspace != "" {
			tag = r.Workspace
		}
		if r.Float != nil {
			float = r.Float
		}
	}
	if err := cs.InsertOn(tag, w); err != nil {
		st.Log.Warn("manage rule", "class", class, "err", err)
		cs.Insert(w)
	}
	if float != nil {
		cs.SetFloating(w, *float)
	}
	st.Log.Debug("managed window", "window", windowString(w), "class", class)
	return st.Refresh()
}

// Unmanage forgets w and refreshes. It is a no-op for unknown windows.
func (st *State) Unmanage(w xp.Window) error {
	st.Scratchpads.Forget(w)
	if !st.Clients.Remove(w) {
		return nil
	}
	return st.Refresh()
}
