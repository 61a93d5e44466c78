// Package scratchpad records whether each named scratchpad is meant to be
// visible, for the status line. It is a display-intent cache: the window
// itself is shown and hidden by the engine.
package scratchpad

import (
	"github.com/pinwm/pinwm/internal/extension"
	"github.com/pinwm/pinwm/internal/wm"
)

// Tracker maps scratchpad names to their intended visibility. The set of
// names is fixed at construction.
type Tracker struct {
	names   []string
	visible map[string]bool
}

// New returns a Tracker with every name hidden.
func New(names ...string) *Tracker {
	t := &Tracker{visible: make(map[string]bool, len(names))}
	for _, n := range names {
		if _, dup := t.visible[n]; dup {
			continue
		}
		t.names = append(t.names, n)
		t.visible[n] = false
	}
	return t
}

// Toggle flips name and returns its new visibility. ok is false, and
// nothing changes, for an unknown name.
func (t *Tracker) Toggle(name string) (visible, ok bool) {
	v, ok := t.visible[name]
	if !ok {
		return false, false
	}
	t.visible[name] = !v
	return !v, true
}

// IsVisible is false for unknown names.
func (t *Tracker) IsVisible(name string) bool {
	return t.visible[name]
}

// Hide marks name hidden. Unknown names are ignored.
func (t *Tracker) Hide(name string) {
	if _, ok := t.visible[name]; ok {
		t.visible[name] = false
	}
}

// Names returns the tracked names in construction order.
func (t *Tracker) Names() []string {
	return append([]string(nil), t.names...)
}

// ToggleHandler flips name in the Tracker registered with the state, then
// asks the engine to show or hide the scratchpad window. The tracker is not
// rolled back if the engine fails.
func ToggleHandler(name string) wm.KeyHandler {
	return wm.KeyHandlerFunc(func(st *wm.State) error {
		t, err := extension.Get[Tracker](&st.Ext)
		if err != nil {
			return err
		}
		visible, ok := t.Toggle(name)
		if !ok {
			return nil
		}
		st.Log.Debug("scratchpad toggled", "name", name, "visible", visible)
		return st.Scratchpads.Toggle(st, name)
	})
}
