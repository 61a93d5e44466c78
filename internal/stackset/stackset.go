// Package stackset models which workspace each screen displays, and which
// windows each workspace holds. It performs no X I/O.
//
// Every workspace sits in exactly one slot: either a screen's Workspace
// field or the hidden list. Operations that move workspaces between slots
// only ever permute them.
package stackset

import (
	"errors"
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
)

var (
	ErrNoScreens     = errors.New("no screens")
	ErrTooFewTags    = errors.New("fewer tags than screens")
	ErrDuplicateTag  = errors.New("duplicate tag")
	ErrEmptyTag      = errors.New("empty tag")
	ErrUnknownTag    = errors.New("unknown tag")
	ErrUnknownScreen = errors.New("unknown screen")
)

// Screen is a physical output. Index is its zero-based position in the
// engine's screen list.
type Screen struct {
	Index     int
	Rect      xp.Rectangle
	Workspace *Workspace
}

// Float is the size of a floating window as a fraction of its screen. Such
// windows are centered.
type Float struct {
	W, H float64
}

type StackSet struct {
	screens  []*Screen
	hidden   []*Workspace
	focused  int
	tags     []string
	floating map[xp.Window]Float
}

// New builds a StackSet with one screen per rect. The first len(rects) tags
// are shown on screens 0, 1, ... in order and the rest start hidden.
func New(tags []string, rects []xp.Rectangle) (*StackSet, error) {
	if len(rects) == 0 {
		return nil, ErrNoScreens
	}
	if len(tags) < len(rects) {
		return nil, fmt.Errorf("%w: %d tags, %d screens", ErrTooFewTags, len(tags), len(rects))
	}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" {
			return nil, ErrEmptyTag
		}
		if seen[t] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, t)
		}
		seen[t] = true
	}
	s := &StackSet{
		tags:     append([]string(nil), tags...),
		floating: make(map[xp.Window]Float),
	}
	for i, r := range rects {
		s.screens = append(s.screens, &Screen{
			Index:     i,
			Rect:      r,
			Workspace: newWorkspace(tags[i]),
		})
	}
	for _, t := range tags[len(rects):] {
		s.hidden = append(s.hidden, newWorkspace(t))
	}
	return s, nil
}

// Tags returns the workspace tags in display order.
func (s *StackSet) Tags() []string {
	return append([]string(nil), s.tags...)
}

func (s *StackSet) Screens() []*Screen {
	return append([]*Screen(nil), s.screens...)
}

func (s *StackSet) Screen(i int) (*Screen, bool) {
	if i < 0 || i >= len(s.screens) {
		return nil, false
	}
	return s.screens[i], true
}

// Hidden returns the workspaces not displayed on any screen.
func (s *StackSet) Hidden() []*Workspace {
	return append([]*Workspace(nil), s.hidden...)
}

func (s *StackSet) CurrentScreen() *Screen {
	return s.screens[s.focused]
}

func (s *StackSet) CurrentWorkspace() *Workspace {
	return s.screens[s.focused].Workspace
}

// CurrentTag is the tag of the workspace on the focused screen.
func (s *StackSet) CurrentTag() string {
	return s.CurrentWorkspace().Tag
}

// FocusScreen focuses screen i. It reports false, and changes nothing, if
// there is no such screen.
func (s *StackSet) FocusScreen(i int) bool {
	if i < 0 || i >= len(s.screens) {
		return false
	}
	s.focused = i
	return true
}

// Workspace returns the workspace with the given tag, wherever it sits.
func (s *StackSet) Workspace(tag string) (*Workspace, bool) {
	if slot := s.slot(tag); slot != nil {
		return *slot, true
	}
	return nil, false
}

// Workspaces returns every workspace in display order.
func (s *StackSet) Workspaces() []*Workspace {
	ks := make([]*Workspace, 0, len(s.tags))
	for _, t := range s.tags {
		if k, ok := s.Workspace(t); ok {
			ks = append(ks, k)
		}
	}
	return ks
}

// ScreenOf returns the screen currently displaying tag.
func (s *StackSet) ScreenOf(tag string) (*Screen, bool) {
	for _, sc := range s.screens {
		if sc.Workspace.Tag == tag {
			return sc, true
		}
	}
	return nil, false
}

// WindowCount is the number of windows held by the workspace with tag, or
// zero for an unknown tag.
func (s *StackSet) WindowCount(tag string) int {
	if k, ok := s.Workspace(tag); ok {
		return k.Len()
	}
	return 0
}

// slot returns the location holding the workspace with tag: a screen's
// Workspace field or an element of the hidden list.
func (s *StackSet) slot(tag string) **Workspace {
	for _, sc := range s.screens {
		if sc.Workspace.Tag == tag {
			return &sc.Workspace
		}
	}
	for i, k := range s.hidden {
		if k.Tag == tag {
			return &s.hidden[i]
		}
	}
	return nil
}

// SwapWorkspace exchanges the workspace on screen i with the workspace
// tagged tag. Afterwards screen i displays tag, and the workspace previously
// on screen i occupies the slot tag was taken from. Focus is unchanged.
// Nothing is modified when an error is returned.
func (s *StackSet) SwapWorkspace(i int, tag string) error {
	if i < 0 || i >= len(s.screens) {
		return fmt.Errorf("%w: %d", ErrUnknownScreen, i)
	}
	from := s.slot(tag)
	if from == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	home := &s.screens[i].Workspace
	*home, *from = *from, *home
	return nil
}

// View makes tag visible: it focuses the screen already displaying tag, or
// otherwise brings tag onto the focused screen.
func (s *StackSet) View(tag string) error {
	if sc, ok := s.ScreenOf(tag); ok {
		s.focused = sc.Index
		return nil
	}
	return s.SwapWorkspace(s.focused, tag)
}

// Contains reports whether any workspace holds w.
func (s *StackSet) Contains(w xp.Window) bool {
	_, ok := s.TagOf(w)
	return ok
}

func (s *StackSet) TagOf(w xp.Window) (string, bool) {
	for _, sc := range s.screens {
		if sc.Workspace.Contains(w) {
			return sc.Workspace.Tag, true
		}
	}
	for _, k := range s.hidden {
		if k.Contains(w) {
			return k.Tag, true
		}
	}
	return "", false
}

// Insert adds w to the current workspace and focuses it.
func (s *StackSet) Insert(w xp.Window) {
	s.CurrentWorkspace().insert(w)
}

// InsertOn adds w to the workspace with tag.
func (s *StackSet) InsertOn(tag string, w xp.Window) error {
	k, ok := s.Workspace(tag)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	k.insert(w)
	return nil
}

// Remove drops w from whichever workspace holds it, and forgets its
// floating state.
func (s *StackSet) Remove(w xp.Window) bool {
	delete(s.floating, w)
	for _, k := range s.Workspaces() {
		if k.remove(w) {
			return true
		}
	}
	return false
}

func (s *StackSet) FocusedWindow() (xp.Window, bool) {
	return s.CurrentWorkspace().Focused()
}

// FocusWindow focuses w within its workspace and, if that workspace is on
// a screen, focuses that screen.
func (s *StackSet) FocusWindow(w xp.Window) bool {
	tag, ok := s.TagOf(w)
	if !ok {
		return false
	}
	k, _ := s.Workspace(tag)
	k.focusWindow(w)
	if sc, ok := s.ScreenOf(tag); ok {
		s.focused = sc.Index
	}
	return true
}

func (s *StackSet) FocusDown() { s.CurrentWorkspace().traverse(+1) }
func (s *StackSet) FocusUp()   { s.CurrentWorkspace().traverse(-1) }
func (s *StackSet) SwapDown()  { s.CurrentWorkspace().swap(+1) }
func (s *StackSet) SwapUp()    { s.CurrentWorkspace().swap(-1) }
func (s *StackSet) SwapMain()  { s.CurrentWorkspace().swapMain() }

// MoveFocusedToTag moves the focused window of the current workspace to the
// workspace with tag. It reports whether a window moved.
func (s *StackSet) MoveFocusedToTag(tag string) bool {
	target, ok := s.Workspace(tag)
	if !ok {
		return false
	}
	k := s.CurrentWorkspace()
	w, ok := k.Focused()
	if !ok || target == k {
		return false
	}
	k.remove(w)
	target.insert(w)
	return true
}

// MoveFocusedToScreen moves the focused window to the workspace displayed
// on screen i.
func (s *StackSet) MoveFocusedToScreen(i int) bool {
	sc, ok := s.Screen(i)
	if !ok {
		return false
	}
	return s.MoveFocusedToTag(sc.Workspace.Tag)
}

// SetFloating marks w as floating with size f.
func (s *StackSet) SetFloating(w xp.Window, f Float) {
	s.floating[w] = f
}

// Sink returns w to the tiled layout.
func (s *StackSet) Sink(w xp.Window) {
	delete(s.floating, w)
}

func (s *StackSet) Floating(w xp.Window) (Float, bool) {
	f, ok := s.floating[w]
	return f, ok
}
