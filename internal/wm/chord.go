package wm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"
)

var ErrBadChord = errors.New("bad key chord")

// ModMask is the set of modifiers that distinguish chords. Lock and
// NumLock are ignored.
const ModMask = xp.ModMaskShift | xp.ModMaskControl | xp.ModMask1 | xp.ModMask4

var modifiers = []struct {
	name string
	mask uint16
}{
	{"M", xp.ModMask4},
	{"A", xp.ModMask1},
	{"C", xp.ModMaskControl},
	{"S", xp.ModMaskShift},
}

// Chord is a key press: a modifier mask and the keysym of the key.
type Chord struct {
	Mask   uint16
	Keysym xp.Keysym
}

// ParseChord parses chords such as "M-S-Return" or "A-1". Modifiers are M
// (Super), A (Alt), C (Control) and S (Shift), joined to the key name by '-'.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "-")
	key := parts[len(parts)-1]
	var c Chord
	for _, p := range parts[:len(parts)-1] {
		found := false
		for _, m := range modifiers {
			if p == m.name {
				c.Mask |= m.mask
				found = true
				break
			}
		}
		if !found {
			return Chord{}, fmt.Errorf("%w: %q: unknown modifier %q", ErrBadChord, s, p)
		}
	}
	k, ok := lookupKeysym(key)
	if !ok {
		return Chord{}, fmt.Errorf("%w: %q: unknown key %q", ErrBadChord, s, key)
	}
	c.Keysym = k
	return c, nil
}

func (c Chord) String() string {
	var b strings.Builder
	for _, m := range modifiers {
		if c.Mask&m.mask != 0 {
			b.WriteString(m.name)
			b.WriteByte('-')
		}
	}
	b.WriteString(keysymString(c.Keysym))
	return b.String()
}

// KeyHandler is an action bound to a chord.
type KeyHandler interface {
	Handle(st *State) error
}

type KeyHandlerFunc func(st *State) error

func (f KeyHandlerFunc) Handle(st *State) error { return f(st) }

type Bindings map[Chord]KeyHandler

// ParseBindings parses every chord in raw.
func ParseBindings(raw map[string]KeyHandler) (Bindings, error) {
	b := make(Bindings, len(raw))
	for s, h := range raw {
		c, err := ParseChord(s)
		if err != nil {
			return nil, err
		}
		b[c] = h
	}
	return b, nil
}

// Chords returns the bound chords, sorted by their string form.
func (b Bindings) Chords() []Chord {
	cs := make([]Chord, 0, len(b))
	for c := range b {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].String() < cs[j].String() })
	return cs
}

// Dispatch runs the handler bound to c, if any, and reports whether there
// was one. Handler errors are logged; they never reach the event loop.
func (b Bindings) Dispatch(st *State, c Chord) bool {
	h, ok := b[Chord{Mask: c.Mask & ModMask, Keysym: c.Keysym}]
	if !ok {
		return false
	}
	if err := h.Handle(st); err != nil {
		st.Log.Error("key handler failed", "chord", c.String(), "err", err)
	}
	return true
}
