package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/pinwm/pinwm/internal/wm"
)

var errAnotherWM = errors.New("could not become the window manager. Is another window manager running?")

var (
	atomWMClass        xp.Atom
	atomWMDeleteWindow xp.Atom
	atomWMProtocols    xp.Atom
	atomWMTakeFocus    xp.Atom
	atomWMTransientFor xp.Atom

	desktopWidth  uint16
	desktopHeight uint16

	keysyms [256][2]xp.Keysym
)

func becomeTheWM() error {
	if err := xp.ChangeWindowAttributesChecked(xConn, rootXWin, xp.CwEventMask, []uint32{
		xp.EventMaskSubstructureRedirect |
			xp.EventMaskSubstructureNotify,
	}).Check(); err != nil {
		if _, ok := err.(xp.AccessError); ok {
			return errAnotherWM
		}
		return err
	}
	return nil
}

func initAtoms() (err error) {
	for _, a := range []struct {
		atom *xp.Atom
		name string
	}{
		{&atomWMClass, "WM_CLASS"},
		{&atomWMDeleteWindow, "WM_DELETE_WINDOW"},
		{&atomWMProtocols, "WM_PROTOCOLS"},
		{&atomWMTakeFocus, "WM_TAKE_FOCUS"},
		{&atomWMTransientFor, "WM_TRANSIENT_FOR"},
	} {
		if *a.atom, err = internAtom(a.name); err != nil {
			return err
		}
	}
	return initNetAtoms()
}

func internAtom(name string) (xp.Atom, error) {
	r, err := xp.InternAtom(xConn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return r.Atom, nil
}

// initCursor gives the root window the usual left pointer instead of X's
// default cross.
func initCursor(xScreen *xp.ScreenInfo) error {
	desktopWidth = xScreen.WidthInPixels
	desktopHeight = xScreen.HeightInPixels

	xFont, err := xp.NewFontId(xConn)
	if err != nil {
		return err
	}
	xCursor, err := xp.NewCursorId(xConn)
	if err != nil {
		return err
	}
	if err := xp.OpenFontChecked(xConn, xFont, uint16(len("cursor")), "cursor").Check(); err != nil {
		return err
	}
	const xcLeftPtr = 68 // XC_left_ptr from cursorfont.h.
	if err := xp.CreateGlyphCursorChecked(
		xConn, xCursor, xFont, xFont, xcLeftPtr, xcLeftPtr+1,
		0, 0, 0, 0xffff, 0xffff, 0xffff).Check(); err != nil {
		return err
	}
	if err := xp.CloseFontChecked(xConn, xFont).Check(); err != nil {
		return err
	}
	return xp.ChangeWindowAttributesChecked(xConn, rootXWin, xp.CwCursor,
		[]uint32{uint32(xCursor)}).Check()
}

func initKeyboardMapping() error {
	const (
		keyLo = 8
		keyHi = 255
	)
	km, err := xp.GetKeyboardMapping(xConn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		return err
	}
	n := int(km.KeysymsPerKeycode)
	if n < 2 {
		return fmt.Errorf("too few keysyms per keycode: %d", n)
	}
	keysyms = [256][2]xp.Keysym{}
	for i := keyLo; i <= keyHi; i++ {
		keysyms[i][0] = km.Keysyms[(i-keyLo)*n+0]
		keysyms[i][1] = km.Keysyms[(i-keyLo)*n+1]
	}
	return nil
}

// grabKeys grabs every chord on the root window. Each chord is grabbed with
// and without Caps Lock and Num Lock, so that they do not get in the way.
// Chords whose key is not on the keyboard are skipped.
func grabKeys(chords []wm.Chord) (skipped []wm.Chord, err error) {
	if err := xp.UngrabKeyChecked(xConn, xp.GrabAny, rootXWin, xp.ModMaskAny).Check(); err != nil {
		return nil, err
	}
	for _, c := range chords {
		keycode, shift := findKeycode(c.Keysym)
		if keycode == 0 {
			skipped = append(skipped, c)
			continue
		}
		mask := c.Mask
		if shift {
			mask |= xp.ModMaskShift
		}
		for _, extra := range []uint16{0, xp.ModMaskLock, xp.ModMask2, xp.ModMaskLock | xp.ModMask2} {
			if err := xp.GrabKeyChecked(xConn, false, rootXWin, mask|extra, keycode,
				xp.GrabModeAsync, xp.GrabModeAsync).Check(); err != nil {
				return skipped, fmt.Errorf("grab %s: %w", c, err)
			}
		}
	}
	return skipped, nil
}

func findKeycode(keysym xp.Keysym) (keycode xp.Keycode, shift bool) {
	for i, k := range keysyms {
		if k[0] == keysym {
			return xp.Keycode(i), false
		}
		if k[1] == keysym {
			return xp.Keycode(i), true
		}
	}
	return 0, false
}

// initScreens returns the rectangle of each physical screen, or of the
// whole desktop when Xinerama reports none.
func initScreens() ([]xp.Rectangle, error) {
	xine, err := xinerama.QueryScreens(xConn).Reply()
	if err != nil {
		return nil, err
	}
	if len(xine.ScreenInfo) == 0 {
		return []xp.Rectangle{{Width: desktopWidth, Height: desktopHeight}}, nil
	}
	rects := make([]xp.Rectangle, len(xine.ScreenInfo))
	for i, si := range xine.ScreenInfo {
		rects[i] = xp.Rectangle{
			X:      si.XOrg,
			Y:      si.YOrg,
			Width:  si.Width,
			Height: si.Height,
		}
	}
	return rects, nil
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
