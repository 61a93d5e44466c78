package wm

import (
	"errors"
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/stackset"
)

var ErrUnknownScratchpad = errors.New("unknown scratchpad")

// NamedScratchpad is a floating program that is summoned and dismissed
// with one key. Its window is recognised by its WM_CLASS.
type NamedScratchpad struct {
	Name    string
	Command []string
	Class   string
	Size    stackset.Float
}

// Scratchpads tracks the window claimed by each named scratchpad. A claimed
// window that no workspace holds is hidden.
type Scratchpads struct {
	// OnRelease, if set, is called with the name of a scratchpad whose
	// window went away.
	OnRelease func(name string)

	pads    []NamedScratchpad
	windows map[string]xp.Window
}

func NewScratchpads(pads ...NamedScratchpad) *Scratchpads {
	return &Scratchpads{
		pads:    pads,
		windows: make(map[string]xp.Window),
	}
}

func (p *Scratchpads) pad(name string) (NamedScratchpad, bool) {
	for _, sp := range p.pads {
		if sp.Name == name {
			return sp, true
		}
	}
	return NamedScratchpad{}, false
}

// Names returns the scratchpad names in configuration order.
func (p *Scratchpads) Names() []string {
	names := make([]string, len(p.pads))
	for i, sp := range p.pads {
		names[i] = sp.Name
	}
	return names
}

// Toggle shows the named scratchpad on the current workspace, or hides it
// if it is already there. The first toggle spawns its program; the window
// is claimed when it maps.
func (p *Scratchpads) Toggle(st *State, name string) error {
	sp, ok := p.pad(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScratchpad, name)
	}
	w, ok := p.windows[name]
	if !ok {
		return st.Spawner.Spawn(sp.Command)
	}
	cs := st.Clients
	if tag, ok := cs.TagOf(w); ok {
		cs.Remove(w)
		if tag == cs.CurrentTag() {
			return st.Refresh()
		}
	}
	cs.Insert(w)
	cs.SetFloating(w, sp.Size)
	return st.Refresh()
}

// Claim adopts w for the first unclaimed scratchpad whose class matches,
// placing it floating on the current workspace.
func (p *Scratchpads) Claim(st *State, w xp.Window, class string) bool {
	for _, sp := range p.pads {
		if sp.Class != class {
			continue
		}
		if _, taken := p.windows[sp.Name]; taken {
			continue
		}
		p.windows[sp.Name] = w
		st.Clients.Insert(w)
		st.Clients.SetFloating(w, sp.Size)
		return true
	}
	return false
}

// Forget releases w if a scratchpad claimed it, so the next toggle spawns
// a new one.
func (p *Scratchpads) Forget(w xp.Window) {
	for name, x := range p.windows {
		if x != w {
			continue
		}
		delete(p.windows, name)
		if p.OnRelease != nil {
			p.OnRelease(name)
		}
	}
}

// Hidden returns the claimed windows that no workspace holds.
func (p *Scratchpads) Hidden(cs *stackset.StackSet) []xp.Window {
	var ws []xp.Window
	for _, sp := range p.pads {
		if w, ok := p.windows[sp.Name]; ok && !cs.Contains(w) {
			ws = append(ws, w)
		}
	}
	return ws
}

func (p *Scratchpads) Window(name string) (xp.Window, bool) {
	w, ok := p.windows[name]
	return w, ok
}
