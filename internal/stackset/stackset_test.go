package stackset

import (
	"errors"
	"sort"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoScreens() []xp.Rectangle {
	return []xp.Rectangle{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
}

func newTestSet(t *testing.T, tags ...string) *StackSet {
	t.Helper()
	s, err := New(tags, twoScreens())
	require.NoError(t, err)
	return s
}

// tagsBySlot lists every workspace tag, screens first, for bijection checks.
func tagsBySlot(s *StackSet) []string {
	var tags []string
	for _, sc := range s.Screens() {
		tags = append(tags, sc.Workspace.Tag)
	}
	for _, k := range s.Hidden() {
		tags = append(tags, k.Tag)
	}
	return tags
}

func TestNew(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")

	assert.Equal(t, []string{"1", "2", "3"}, s.Tags())
	assert.Equal(t, "1", s.CurrentTag())
	sc, ok := s.Screen(1)
	require.True(t, ok)
	assert.Equal(t, "2", sc.Workspace.Tag)
	require.Len(t, s.Hidden(), 1)
	assert.Equal(t, "3", s.Hidden()[0].Tag)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name  string
		tags  []string
		rects []xp.Rectangle
		want  error
	}{
		{"no screens", []string{"1"}, nil, ErrNoScreens},
		{"too few tags", []string{"1"}, twoScreens(), ErrTooFewTags},
		{"duplicate", []string{"1", "2", "1"}, twoScreens(), ErrDuplicateTag},
		{"empty", []string{"1", ""}, twoScreens(), ErrEmptyTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tags, tt.rects)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSwapWorkspaceHiddenToScreen(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")

	require.NoError(t, s.SwapWorkspace(0, "3"))

	sc, _ := s.Screen(0)
	assert.Equal(t, "3", sc.Workspace.Tag)
	assert.Equal(t, "1", s.Hidden()[0].Tag)
}

func TestSwapWorkspaceBetweenScreens(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")
	w := xp.Window(42)
	require.NoError(t, s.InsertOn("2", w))

	require.NoError(t, s.SwapWorkspace(0, "2"))

	s0, _ := s.Screen(0)
	s1, _ := s.Screen(1)
	assert.Equal(t, "2", s0.Workspace.Tag)
	assert.Equal(t, "1", s1.Workspace.Tag)
	assert.True(t, s0.Workspace.Contains(w), "windows travel with their workspace")
	assert.Equal(t, 0, s.CurrentScreen().Index, "focus is unchanged")
}

func TestSwapWorkspaceIsPermutation(t *testing.T) {
	tags := []string{"1", "2", "3", "4", "5"}
	for screen := 0; screen < 2; screen++ {
		for _, tag := range tags {
			s := newTestSet(t, tags...)
			before := tagsBySlot(s)
			require.NoError(t, s.SwapWorkspace(screen, tag))
			after := tagsBySlot(s)

			sort.Strings(before)
			sort.Strings(after)
			assert.Equal(t, before, after, "screen %d tag %s", screen, tag)
			sc, _ := s.Screen(screen)
			assert.Equal(t, tag, sc.Workspace.Tag)
		}
	}
}

func TestSwapWorkspaceErrorsLeaveStateAlone(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")
	before := tagsBySlot(s)

	err := s.SwapWorkspace(5, "3")
	assert.True(t, errors.Is(err, ErrUnknownScreen))
	err = s.SwapWorkspace(0, "9")
	assert.True(t, errors.Is(err, ErrUnknownTag))

	assert.Equal(t, before, tagsBySlot(s))
}

func TestView(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")

	require.NoError(t, s.View("2"))
	assert.Equal(t, 1, s.CurrentScreen().Index, "visible tag focuses its screen")

	require.NoError(t, s.View("3"))
	assert.Equal(t, "3", s.CurrentTag())
	assert.Equal(t, 1, s.CurrentScreen().Index)
	assert.Equal(t, "2", s.Hidden()[0].Tag)
}

func TestInsertRemoveFocus(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)

	w, ok := s.FocusedWindow()
	require.True(t, ok)
	assert.Equal(t, xp.Window(3), w)
	assert.Equal(t, []xp.Window{3, 2, 1}, s.CurrentWorkspace().Windows())

	s.FocusDown()
	w, _ = s.FocusedWindow()
	assert.Equal(t, xp.Window(2), w)

	s.FocusUp()
	s.FocusUp()
	w, _ = s.FocusedWindow()
	assert.Equal(t, xp.Window(1), w, "focus wraps")

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	w, _ = s.FocusedWindow()
	assert.Equal(t, xp.Window(2), w)
	assert.Equal(t, 2, s.WindowCount("1"))
	assert.Equal(t, 0, s.WindowCount("nope"))
}

func TestSwapDownAndMain(t *testing.T) {
	s := newTestSet(t, "1", "2")
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)

	s.SwapDown()
	assert.Equal(t, []xp.Window{2, 3, 1}, s.CurrentWorkspace().Windows())
	w, _ := s.FocusedWindow()
	assert.Equal(t, xp.Window(3), w)

	s.SwapMain()
	assert.Equal(t, []xp.Window{3, 2, 1}, s.CurrentWorkspace().Windows())
}

func TestMoveFocusedToTag(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")
	s.Insert(7)

	assert.False(t, s.MoveFocusedToTag("9"))
	assert.True(t, s.MoveFocusedToTag("3"))
	assert.Equal(t, 0, s.WindowCount("1"))
	tag, ok := s.TagOf(7)
	require.True(t, ok)
	assert.Equal(t, "3", tag)
	assert.False(t, s.MoveFocusedToTag("3"), "nothing focused")
}

func TestFocusWindowFocusesScreen(t *testing.T) {
	s := newTestSet(t, "1", "2", "3")
	require.NoError(t, s.InsertOn("2", 5))

	assert.True(t, s.FocusWindow(5))
	assert.Equal(t, 1, s.CurrentScreen().Index)
	assert.False(t, s.FocusWindow(6))
}

func TestFloating(t *testing.T) {
	s := newTestSet(t, "1", "2")
	s.Insert(9)
	s.SetFloating(9, Float{W: 0.8, H: 0.6})

	f, ok := s.Floating(9)
	require.True(t, ok)
	assert.Equal(t, 0.8, f.W)

	s.Remove(9)
	_, ok = s.Floating(9)
	assert.False(t, ok)
}
