// Package wm is the window manager engine: it owns the client set, the
// extension store and the refresh hooks, and it dispatches key chords to
// handlers. All of its state is owned by the event loop goroutine.
package wm

import (
	"errors"
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"pkt.systems/pslog"

	"github.com/pinwm/pinwm/internal/extension"
	"github.com/pinwm/pinwm/internal/layout"
	"github.com/pinwm/pinwm/internal/stackset"
)

// Conn is the X side of the engine.
type Conn interface {
	// Redraw makes the screen match the State: it positions, shows and
	// hides windows and sets the input focus.
	Redraw(st *State) error
	// Kill politely asks w to close.
	Kill(w xp.Window) error
}

// RefreshHook runs on every Refresh, before the Conn redraws.
type RefreshHook func(st *State) error

type State struct {
	Clients     *stackset.StackSet
	Ext         extension.Store
	Scratchpads *Scratchpads
	Rules       []ManageRule
	Spacing     layout.Spacing
	Spawner     Spawner
	Log         pslog.Logger

	conn       Conn
	layouts    *layout.Stack
	workspaces map[string]*layout.Stack
	hooks      []RefreshHook
	refreshing bool
}

func NewState(clients *stackset.StackSet, layouts *layout.Stack, conn Conn, log pslog.Logger) *State {
	return &State{
		Clients:     clients,
		Scratchpads: NewScratchpads(),
		Spawner:     ExecSpawner{Log: log},
		Log:         log,
		conn:        conn,
		layouts:     layouts,
		workspaces:  make(map[string]*layout.Stack),
	}
}

// Layouts returns the layout stack of the workspace with tag. Each
// workspace starts from its own copy of the default stack.
func (st *State) Layouts(tag string) *layout.Stack {
	s, ok := st.workspaces[tag]
	if !ok {
		s = st.layouts.Clone()
		st.workspaces[tag] = s
	}
	return s
}

// ComposeOrSetRefreshHook adds h after the hooks already registered.
func (st *State) ComposeOrSetRefreshHook(h RefreshHook) {
	st.hooks = append(st.hooks, h)
}

// Refresh runs every refresh hook in registration order and then redraws.
// A failing hook does not stop the others or the redraw; all errors are
// joined. Calls made while a refresh is already running are ignored.
func (st *State) Refresh() error {
	if st.refreshing {
		return nil
	}
	st.refreshing = true
	defer func() { st.refreshing = false }()

	var errs []error
	for i, h := range st.hooks {
		if err := h(st); err != nil {
			errs = append(errs, fmt.Errorf("refresh hook %d: %w", i, err))
		}
	}
	if st.conn != nil {
		if err := st.conn.Redraw(st); err != nil {
			errs = append(errs, fmt.Errorf("redraw: %w", err))
		}
	}
	return errors.Join(errs...)
}

// KillFocused asks the focused window to close.
func (st *State) KillFocused() error {
	w, ok := st.Clients.FocusedWindow()
	if !ok || st.conn == nil {
		return nil
	}
	return st.conn.Kill(w)
}
