package main

import (
	"slices"
	"strings"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/extension"
	"github.com/pinwm/pinwm/internal/pinned"
	"github.com/pinwm/pinwm/internal/wm"
)

// The subset of EWMH that pagers and `xdotool set_desktop` need.
var (
	atomNetSupported         xp.Atom
	atomNetNumberOfDesktops  xp.Atom
	atomNetDesktopNames      xp.Atom
	atomNetCurrentDesktop    xp.Atom
	atomNetActiveWindow      xp.Atom
	atomNetClientList        xp.Atom
	atomNetSupportingWMCheck xp.Atom
	atomNetWMName            xp.Atom
	atomUTF8String           xp.Atom
)

var (
	supportingWMCheckXWin xp.Window
	lastCurrentDesktop    = -1
)

func initNetAtoms() (err error) {
	for _, a := range []struct {
		atom *xp.Atom
		name string
	}{
		{&atomNetSupported, "_NET_SUPPORTED"},
		{&atomNetNumberOfDesktops, "_NET_NUMBER_OF_DESKTOPS"},
		{&atomNetDesktopNames, "_NET_DESKTOP_NAMES"},
		{&atomNetCurrentDesktop, "_NET_CURRENT_DESKTOP"},
		{&atomNetActiveWindow, "_NET_ACTIVE_WINDOW"},
		{&atomNetClientList, "_NET_CLIENT_LIST"},
		{&atomNetSupportingWMCheck, "_NET_SUPPORTING_WM_CHECK"},
		{&atomNetWMName, "_NET_WM_NAME"},
		{&atomUTF8String, "UTF8_STRING"},
	} {
		if *a.atom, err = internAtom(a.name); err != nil {
			return err
		}
	}
	return nil
}

func u32s(vs ...uint32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		xgb.Put32(b[4*i:], v)
	}
	return b
}

func setProperty(xWin xp.Window, prop, typ xp.Atom, format byte, n int, data []byte) {
	check(xp.ChangePropertyChecked(xConn, xp.PropModeReplace, xWin, prop, typ,
		format, uint32(n), data))
}

// initEWMH announces the window manager and its desktops on the root
// window.
func initEWMH(screen *xp.ScreenInfo, tags []string) error {
	var err error
	supportingWMCheckXWin, err = xp.NewWindowId(xConn)
	if err != nil {
		return err
	}
	if err := xp.CreateWindowChecked(
		xConn, screen.RootDepth, supportingWMCheckXWin, rootXWin,
		offscreenXY, offscreenXY, 1, 1, 0,
		xp.WindowClassInputOutput, screen.RootVisual,
		xp.CwOverrideRedirect, []uint32{1},
	).Check(); err != nil {
		return err
	}
	self := u32s(uint32(supportingWMCheckXWin))
	setProperty(rootXWin, atomNetSupportingWMCheck, xp.AtomWindow, 32, 1, self)
	setProperty(supportingWMCheckXWin, atomNetSupportingWMCheck, xp.AtomWindow, 32, 1, self)
	setProperty(supportingWMCheckXWin, atomNetWMName, atomUTF8String, 8, len("pinwm"), []byte("pinwm"))

	supported := []uint32{
		uint32(atomNetSupported),
		uint32(atomNetNumberOfDesktops),
		uint32(atomNetDesktopNames),
		uint32(atomNetCurrentDesktop),
		uint32(atomNetActiveWindow),
		uint32(atomNetClientList),
		uint32(atomNetSupportingWMCheck),
	}
	setProperty(rootXWin, atomNetSupported, xp.AtomAtom, 32, len(supported), u32s(supported...))
	setProperty(rootXWin, atomNetNumberOfDesktops, xp.AtomCardinal, 32, 1, u32s(uint32(len(tags))))
	names := strings.Join(tags, "\x00") + "\x00"
	setProperty(rootXWin, atomNetDesktopNames, atomUTF8String, 8, len(names), []byte(names))
	return nil
}

// updateEWMH is a refresh hook publishing the current desktop, the active
// window and the managed windows.
func updateEWMH(st *wm.State) error {
	cs := st.Clients
	if i := slices.Index(cs.Tags(), cs.CurrentTag()); i != lastCurrentDesktop {
		setProperty(rootXWin, atomNetCurrentDesktop, xp.AtomCardinal, 32, 1, u32s(uint32(i)))
		lastCurrentDesktop = i
	}
	var active xp.Window
	if w, ok := cs.FocusedWindow(); ok {
		active = w
	}
	setProperty(rootXWin, atomNetActiveWindow, xp.AtomWindow, 32, 1, u32s(uint32(active)))

	var clients []uint32
	for _, k := range cs.Workspaces() {
		for _, w := range k.Windows() {
			clients = append(clients, uint32(w))
		}
	}
	setProperty(rootXWin, atomNetClientList, xp.AtomWindow, 32, len(clients), u32s(clients...))
	return nil
}

// handleClientMessage serves desktop and focus requests from pagers and
// status bars.
func handleClientMessage(st *wm.State, e xp.ClientMessageEvent) {
	if e.Format != 32 {
		return
	}
	var err error
	switch e.Type {
	case atomNetCurrentDesktop:
		tags := st.Clients.Tags()
		i := int(e.Data.Data32[0])
		if i < 0 || i >= len(tags) {
			return
		}
		err = showTag(st, tags[i])
	case atomNetActiveWindow:
		if st.Clients.FocusWindow(e.Window) {
			err = st.Refresh()
		}
	default:
		return
	}
	if err != nil {
		st.Log.Error("client message failed", "type", e.Type, "err", err)
	}
}

// showTag shows a pinned tag on its home screen, and any other tag on the
// focused screen.
func showTag(st *wm.State, tag string) error {
	if d, err := extension.Get[pinned.Directory](&st.Ext); err == nil {
		if _, ok := d.Lookup(tag); ok {
			return pinned.Show(st, tag)
		}
	}
	return wm.View(tag).Handle(st)
}
