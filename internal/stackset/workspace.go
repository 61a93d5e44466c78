package stackset

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Workspace is a tagged list of windows. windows[0] is the main position of
// the tiling layout; focus indexes the focused window when there is one.
type Workspace struct {
	Tag string

	windows []xp.Window
	focus   int
}

func newWorkspace(tag string) *Workspace {
	return &Workspace{Tag: tag}
}

// Windows returns the workspace's windows in stacking order.
func (k *Workspace) Windows() []xp.Window {
	return append([]xp.Window(nil), k.windows...)
}

func (k *Workspace) Len() int {
	return len(k.windows)
}

// Empty reports whether the workspace holds no managed windows.
func (k *Workspace) Empty() bool {
	return len(k.windows) == 0
}

func (k *Workspace) Focused() (xp.Window, bool) {
	if len(k.windows) == 0 {
		return 0, false
	}
	return k.windows[k.focus], true
}

func (k *Workspace) index(w xp.Window) int {
	for i, x := range k.windows {
		if x == w {
			return i
		}
	}
	return -1
}

func (k *Workspace) Contains(w xp.Window) bool {
	return k.index(w) >= 0
}

// insert places w above the focused window and focuses it.
func (k *Workspace) insert(w xp.Window) {
	if len(k.windows) == 0 {
		k.windows, k.focus = []xp.Window{w}, 0
		return
	}
	k.windows = append(k.windows, 0)
	copy(k.windows[k.focus+1:], k.windows[k.focus:])
	k.windows[k.focus] = w
}

func (k *Workspace) remove(w xp.Window) bool {
	i := k.index(w)
	if i < 0 {
		return false
	}
	k.windows = append(k.windows[:i], k.windows[i+1:]...)
	if k.focus > i || k.focus >= len(k.windows) {
		k.focus--
	}
	if k.focus < 0 {
		k.focus = 0
	}
	return true
}

func (k *Workspace) focusWindow(w xp.Window) bool {
	i := k.index(w)
	if i < 0 {
		return false
	}
	k.focus = i
	return true
}

// traverse moves the focus by delta, wrapping around.
func (k *Workspace) traverse(delta int) {
	n := len(k.windows)
	if n == 0 {
		return
	}
	k.focus = ((k.focus+delta)%n + n) % n
}

// swap exchanges the focused window with its neighbour at delta, wrapping
// around, and keeps the focus on the moved window.
func (k *Workspace) swap(delta int) {
	n := len(k.windows)
	if n < 2 {
		return
	}
	j := ((k.focus+delta)%n + n) % n
	k.windows[k.focus], k.windows[j] = k.windows[j], k.windows[k.focus]
	k.focus = j
}

// swapMain exchanges the focused window with the main position.
func (k *Workspace) swapMain() {
	if k.focus == 0 || len(k.windows) == 0 {
		return
	}
	k.windows[0], k.windows[k.focus] = k.windows[k.focus], k.windows[0]
	k.focus = 0
}
