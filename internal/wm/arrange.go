package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/layout"
)

// Placement is where a visible window goes.
type Placement struct {
	Window   xp.Window
	Rect     xp.Rectangle
	Floating bool
}

// Arrange computes the placement of every window on a screen. For each
// screen, tiled windows come first in stack order, followed by floating
// windows, which are centered on the screen and must be stacked above.
// Windows that are not returned are to be hidden.
func (st *State) Arrange() []Placement {
	var ps []Placement
	for _, sc := range st.Clients.Screens() {
		k := sc.Workspace
		var tiled, floating []xp.Window
		for _, w := range k.Windows() {
			if _, ok := st.Clients.Floating(w); ok {
				floating = append(floating, w)
			} else {
				tiled = append(tiled, w)
			}
		}
		area := st.Spacing.Screen(sc.Rect)
		rects := st.Layouts(k.Tag).Current().Arrange(area, len(tiled))
		for i, w := range tiled {
			if i >= len(rects) {
				break
			}
			ps = append(ps, Placement{Window: w, Rect: st.Spacing.Window(rects[i])})
		}
		for _, w := range floating {
			f, _ := st.Clients.Floating(w)
			ps = append(ps, Placement{Window: w, Rect: layout.Center(sc.Rect, f.W, f.H), Floating: true})
		}
	}
	return ps
}
