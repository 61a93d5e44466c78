package main

import (
	"bytes"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/stackset"
	"github.com/pinwm/pinwm/internal/wm"
)

// offscreenXY is the most negative X/Y co-ordinate. Hidden windows are
// moved there rather than unmapped, so that an UnmapNotify always means
// that the client withdrew its window.
const offscreenXY = -1 << 15

// transientSize is the size of dialogs and other transient windows, which
// always float.
var transientSize = stackset.Float{W: 0.5, H: 0.5}

type client struct {
	rect           xp.Rectangle
	wmDeleteWindow bool
	wmTakeFocus    bool
}

// xConnection draws a wm.State with X requests.
type xConnection struct {
	clients map[xp.Window]*client
	focused xp.Window
}

func newXConnection() *xConnection {
	return &xConnection{clients: make(map[xp.Window]*client)}
}

func (c *xConnection) Redraw(st *wm.State) error {
	visible := make(map[xp.Window]bool)
	var floating []xp.Window
	for _, p := range st.Arrange() {
		visible[p.Window] = true
		c.configure(p.Window, p.Rect)
		if p.Floating {
			floating = append(floating, p.Window)
		}
	}
	for xWin, cl := range c.clients {
		if !visible[xWin] {
			c.configure(xWin, xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: cl.rect.Width, Height: cl.rect.Height})
		}
	}

	w, ok := st.Clients.FocusedWindow()
	if ok && visible[w] {
		raise(w)
	}
	for _, f := range floating {
		raise(f)
	}
	if !ok || !visible[w] {
		w = 0
	}
	if w != c.focused {
		c.focus(w)
	}
	return nil
}

// Kill asks w to close via WM_DELETE_WINDOW, or disconnects its client if
// it does not take part in that protocol.
func (c *xConnection) Kill(w xp.Window) error {
	if cl, ok := c.clients[w]; ok && cl.wmDeleteWindow {
		sendClientMessage(w, atomWMDeleteWindow)
		return nil
	}
	return xp.KillClientChecked(xConn, uint32(w)).Check()
}

func (c *xConnection) configure(xWin xp.Window, r xp.Rectangle) {
	cl, ok := c.clients[xWin]
	if !ok || cl.rect == r {
		return
	}
	cl.rect = r
	mask, values := uint16(0), []uint32(nil)
	if r.X != offscreenXY {
		mask = xp.ConfigWindowX |
			xp.ConfigWindowY |
			xp.ConfigWindowWidth |
			xp.ConfigWindowHeight |
			xp.ConfigWindowBorderWidth
		values = []uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
			uint32(r.Width),
			uint32(r.Height),
			0,
		}
	} else {
		mask = xp.ConfigWindowX | xp.ConfigWindowY
		values = []uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
		}
	}
	check(xp.ConfigureWindowChecked(xConn, xWin, mask, values))
}

func raise(xWin xp.Window) {
	check(xp.ConfigureWindowChecked(xConn, xWin, xp.ConfigWindowStackMode,
		[]uint32{xp.StackModeAbove}))
}

// focus gives w the input focus. A zero w gives it to the root window.
func (c *xConnection) focus(w xp.Window) {
	c.focused = w
	if w == 0 {
		check(xp.SetInputFocusChecked(xConn, xp.InputFocusPointerRoot, xp.InputFocusPointerRoot, eventTime))
		return
	}
	if cl, ok := c.clients[w]; ok && cl.wmTakeFocus {
		sendClientMessage(w, atomWMTakeFocus)
	}
	check(xp.SetInputFocusChecked(xConn, xp.InputFocusParent, w, eventTime))
}

func sendClientMessage(xWin xp.Window, atom xp.Atom) {
	check(xp.SendEventChecked(xConn, false, xWin, xp.EventMaskNoEvent,
		string(xp.ClientMessageEvent{
			Format: 32,
			Window: xWin,
			Type:   atomWMProtocols,
			Data: xp.ClientMessageDataUnionData32New([]uint32{
				uint32(atom),
				uint32(eventTime),
				0,
				0,
				0,
			}),
		}.Bytes()),
	))
}

// windowClass returns the class part of WM_CLASS, which holds the instance
// and class names as two NUL-terminated strings.
func windowClass(xWin xp.Window) (string, error) {
	prop, err := xp.GetProperty(xConn, false, xWin, atomWMClass,
		xp.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		return "", err
	}
	return parseWMClass(prop.Value), nil
}

func parseWMClass(v []byte) string {
	parts := bytes.Split(bytes.TrimRight(v, "\x00"), []byte{0})
	return string(parts[len(parts)-1])
}

func (c *xConnection) manage(st *wm.State, xWin xp.Window, mapRequest bool) {
	if _, ok := c.clients[xWin]; ok {
		if mapRequest {
			check(xp.MapWindowChecked(xConn, xWin))
		}
		return
	}
	cl := &client{}
	if prop, err := xp.GetProperty(xConn, false, xWin, atomWMProtocols,
		xp.GetPropertyTypeAny, 0, 64).Reply(); err != nil {
		st.Log.Warn("WM_PROTOCOLS", "window", xWin, "err", err)
	} else {
		for v := prop.Value; len(v) >= 4; v = v[4:] {
			switch xp.Atom(u32(v)) {
			case atomWMDeleteWindow:
				cl.wmDeleteWindow = true
			case atomWMTakeFocus:
				cl.wmTakeFocus = true
			}
		}
	}
	transient := false
	if prop, err := xp.GetProperty(xConn, false, xWin, atomWMTransientFor,
		xp.GetPropertyTypeAny, 0, 64).Reply(); err != nil {
		st.Log.Warn("WM_TRANSIENT_FOR", "window", xWin, "err", err)
	} else {
		transient = len(prop.Value) == 4
	}
	class, err := windowClass(xWin)
	if err != nil {
		st.Log.Warn("WM_CLASS", "window", xWin, "err", err)
	}

	c.clients[xWin] = cl
	check(xp.ChangeWindowAttributesChecked(xConn, xWin, xp.CwEventMask,
		[]uint32{xp.EventMaskEnterWindow | xp.EventMaskStructureNotify},
	))
	c.configure(xWin, xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: 1, Height: 1})
	if mapRequest {
		check(xp.MapWindowChecked(xConn, xWin))
	}
	if transient {
		st.Clients.SetFloating(xWin, transientSize)
	}
	if err := st.Manage(xWin, class); err != nil {
		st.Log.Error("manage", "window", xWin, "class", class, "err", err)
	}
}

func (c *xConnection) unmanage(st *wm.State, xWin xp.Window) {
	if _, ok := c.clients[xWin]; !ok {
		return
	}
	delete(c.clients, xWin)
	if c.focused == xWin {
		c.focused = 0
	}
	if err := st.Unmanage(xWin); err != nil {
		st.Log.Error("unmanage", "window", xWin, "err", err)
	}
}

func (c *xConnection) handleConfigureRequest(e xp.ConfigureRequestEvent) {
	if cl, ok := c.clients[e.Window]; ok {
		cne := xp.ConfigureNotifyEvent{
			Event:  e.Window,
			Window: e.Window,
			X:      cl.rect.X,
			Y:      cl.rect.Y,
			Width:  cl.rect.Width,
			Height: cl.rect.Height,
		}
		check(xp.SendEventChecked(xConn, false, e.Window,
			xp.EventMaskStructureNotify, string(cne.Bytes())))
		return
	}
	mask, values := uint16(0), []uint32(nil)
	if e.ValueMask&xp.ConfigWindowX != 0 {
		mask |= xp.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xp.ConfigWindowY != 0 {
		mask |= xp.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xp.ConfigWindowWidth != 0 {
		mask |= xp.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xp.ConfigWindowHeight != 0 {
		mask |= xp.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xp.ConfigWindowBorderWidth != 0 {
		mask |= xp.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xp.ConfigWindowSibling != 0 {
		mask |= xp.ConfigWindowSibling
		values = append(values, uint32(e.Sibling))
	}
	if e.ValueMask&xp.ConfigWindowStackMode != 0 {
		mask |= xp.ConfigWindowStackMode
		values = append(values, uint32(e.StackMode))
	}
	check(xp.ConfigureWindowChecked(xConn, e.Window, mask, values))
}
