package wm

import (
	"strings"

	"github.com/pinwm/pinwm/internal/layout"
	"github.com/pinwm/pinwm/internal/stackset"
)

// Modify applies f to the client set and refreshes.
func Modify(f func(cs *stackset.StackSet)) KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		f(st.Clients)
		return st.Refresh()
	})
}

// Spawn starts argv without waiting for it.
func Spawn(argv ...string) KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		return st.Spawner.Spawn(argv)
	})
}

// SendLayoutMessage sends m to the current workspace's layout and
// refreshes if the layout changed.
func SendLayoutMessage(m layout.Message) KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		if !st.Layouts(st.Clients.CurrentTag()).Send(m) {
			return nil
		}
		return st.Refresh()
	})
}

func NextLayout() KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		st.Layouts(st.Clients.CurrentTag()).Next()
		return st.Refresh()
	})
}

func PrevLayout() KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		st.Layouts(st.Clients.CurrentTag()).Prev()
		return st.Refresh()
	})
}

func KillFocused() KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		return st.KillFocused()
	})
}

// View shows tag the default way: focus its screen if it is visible,
// otherwise pull it onto the focused screen.
func View(tag string) KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		if err := st.Clients.View(tag); err != nil {
			return err
		}
		return st.Refresh()
	})
}

// LogState logs the screens, workspaces and windows at info level.
func LogState() KeyHandler {
	return KeyHandlerFunc(func(st *State) error {
		cs := st.Clients
		for _, sc := range cs.Screens() {
			st.Log.Info("screen",
				"index", sc.Index,
				"tag", sc.Workspace.Tag,
				"focused", sc.Index == cs.CurrentScreen().Index,
				"layout", st.Layouts(sc.Workspace.Tag).Current().Name(),
			)
		}
		for _, k := range cs.Workspaces() {
			ws := make([]string, 0, k.Len())
			for _, w := range k.Windows() {
				ws = append(ws, windowString(w))
			}
			st.Log.Info("workspace", "tag", k.Tag, "windows", strings.Join(ws, ","))
		}
		return nil
	})
}
