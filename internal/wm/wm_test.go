package wm

import (
	"bytes"
	"errors"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"

	"github.com/pinwm/pinwm/internal/layout"
	"github.com/pinwm/pinwm/internal/stackset"
)

type fakeConn struct {
	redraws int
	killed  []xp.Window
	err     error
	onDraw  func(st *State)
}

func (c *fakeConn) Redraw(st *State) error {
	c.redraws++
	if c.onDraw != nil {
		c.onDraw(st)
	}
	return c.err
}

func (c *fakeConn) Kill(w xp.Window) error {
	c.killed = append(c.killed, w)
	return nil
}

type fakeSpawner struct {
	spawned [][]string
}

func (s *fakeSpawner) Spawn(argv []string) error {
	s.spawned = append(s.spawned, argv)
	return nil
}

func newTestState(t *testing.T) (*State, *fakeConn, *bytes.Buffer) {
	t.Helper()
	cs, err := stackset.New([]string{"1", "2", "3", "4"}, []xp.Rectangle{
		{Width: 1920, Height: 1080},
		{X: 1920, Width: 1920, Height: 1080},
	})
	require.NoError(t, err)
	var buf bytes.Buffer
	log := pslog.NewWithOptions(&buf, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
		MinLevel:      pslog.DebugLevel,
	})
	conn := &fakeConn{}
	layouts := layout.NewStack(&layout.MainAndStack{MaxMain: 1, Ratio: 0.6, Step: 0.1}, layout.Monocle{})
	return NewState(cs, layouts, conn, log), conn, &buf
}

func TestRefreshRunsHooksInOrderThenRedraws(t *testing.T) {
	st, conn, _ := newTestState(t)
	var order []string
	st.ComposeOrSetRefreshHook(func(*State) error {
		order = append(order, "first")
		return nil
	})
	st.ComposeOrSetRefreshHook(func(*State) error {
		order = append(order, "second")
		return nil
	})
	conn.onDraw = func(*State) { order = append(order, "redraw") }

	require.NoError(t, st.Refresh())
	assert.Equal(t, []string{"first", "second", "redraw"}, order)
}

func TestRefreshJoinsErrorsAndStillRedraws(t *testing.T) {
	st, conn, _ := newTestState(t)
	errBar := errors.New("bar gone")
	ran := false
	st.ComposeOrSetRefreshHook(func(*State) error { return errBar })
	st.ComposeOrSetRefreshHook(func(*State) error {
		ran = true
		return nil
	})

	err := st.Refresh()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBar))
	assert.True(t, ran)
	assert.Equal(t, 1, conn.redraws)
}

func TestRefreshIsNotReentrant(t *testing.T) {
	st, conn, _ := newTestState(t)
	st.ComposeOrSetRefreshHook(func(st *State) error { return st.Refresh() })

	require.NoError(t, st.Refresh())
	assert.Equal(t, 1, conn.redraws)
}

func TestLayoutsArePerWorkspace(t *testing.T) {
	st, _, _ := newTestState(t)

	require.NoError(t, NextLayout().Handle(st))
	assert.Equal(t, "monocle", st.Layouts("1").Current().Name())
	assert.Equal(t, "side", st.Layouts("2").Current().Name())

	st.Clients.FocusScreen(1)
	require.NoError(t, SendLayoutMessage(layout.IncMain).Handle(st))
	assert.Equal(t, 2, st.Layouts("2").Current().(*layout.MainAndStack).MaxMain)
	assert.Equal(t, 1, st.Layouts("3").Current().(*layout.MainAndStack).MaxMain)
}

func TestKillFocused(t *testing.T) {
	st, conn, _ := newTestState(t)
	require.NoError(t, KillFocused().Handle(st))
	assert.Empty(t, conn.killed)

	st.Clients.Insert(11)
	require.NoError(t, KillFocused().Handle(st))
	assert.Equal(t, []xp.Window{11}, conn.killed)
}

func TestManageRules(t *testing.T) {
	st, conn, _ := newTestState(t)
	st.Rules = []ManageRule{
		{Class: "floatTerm", Float: &stackset.Float{W: 0.8, H: 0.6}},
		{Class: "discord", Workspace: "4"},
		{Class: "lost", Workspace: "99"},
	}

	require.NoError(t, st.Manage(1, "floatTerm"))
	require.NoError(t, st.Manage(2, "discord"))
	require.NoError(t, st.Manage(3, "lost"))
	require.NoError(t, st.Manage(3, "lost"), "already managed")

	f, ok := st.Clients.Floating(1)
	require.True(t, ok)
	assert.Equal(t, 0.8, f.W)
	tag, _ := st.Clients.TagOf(2)
	assert.Equal(t, "4", tag)
	tag, _ = st.Clients.TagOf(3)
	assert.Equal(t, "1", tag, "unknown workspace falls back to current")
	assert.Equal(t, 3, conn.redraws)

	require.NoError(t, st.Unmanage(2))
	require.NoError(t, st.Unmanage(2))
	assert.False(t, st.Clients.Contains(2))
	assert.Equal(t, 4, conn.redraws)
}

func TestManageKeepsTransientFloating(t *testing.T) {
	st, _, _ := newTestState(t)
	st.Rules = []ManageRule{{Class: "discord", Workspace: "4"}}

	st.Clients.SetFloating(7, stackset.Float{W: 0.5, H: 0.5})
	require.NoError(t, st.Manage(7, "discord"))

	tag, _ := st.Clients.TagOf(7)
	assert.Equal(t, "4", tag)
	_, floating := st.Clients.Floating(7)
	assert.True(t, floating)
}

func TestScratchpadForgetReleases(t *testing.T) {
	st, _, _ := newTestState(t)
	var released []string
	st.Scratchpads = NewScratchpads(NamedScratchpad{Name: "term", Class: "scratchterm"})
	st.Scratchpads.OnRelease = func(name string) { released = append(released, name) }

	require.NoError(t, st.Manage(60, "scratchterm"))
	require.NoError(t, st.Unmanage(61))
	assert.Empty(t, released)

	require.NoError(t, st.Unmanage(60))
	assert.Equal(t, []string{"term"}, released)
	_, ok := st.Scratchpads.Window("term")
	assert.False(t, ok)
}

func TestScratchpadToggle(t *testing.T) {
	st, _, _ := newTestState(t)
	sp := &fakeSpawner{}
	st.Spawner = sp
	st.Scratchpads = NewScratchpads(NamedScratchpad{
		Name:    "term",
		Command: []string{"alacritty", "--class", "scratchterm"},
		Class:   "scratchterm",
		Size:    stackset.Float{W: 0.8, H: 0.6},
	})

	require.NoError(t, st.Scratchpads.Toggle(st, "term"))
	assert.Equal(t, [][]string{{"alacritty", "--class", "scratchterm"}}, sp.spawned)

	require.NoError(t, st.Manage(50, "scratchterm"))
	tag, ok := st.Clients.TagOf(50)
	require.True(t, ok)
	assert.Equal(t, "1", tag)
	_, floating := st.Clients.Floating(50)
	assert.True(t, floating)

	require.NoError(t, st.Scratchpads.Toggle(st, "term"))
	assert.False(t, st.Clients.Contains(50))
	assert.Equal(t, []xp.Window{50}, st.Scratchpads.Hidden(st.Clients))

	require.NoError(t, st.Scratchpads.Toggle(st, "term"))
	assert.True(t, st.Clients.Contains(50))
	assert.Empty(t, st.Scratchpads.Hidden(st.Clients))

	// On another workspace it is pulled over rather than hidden.
	st.Clients.FocusScreen(1)
	require.NoError(t, st.Scratchpads.Toggle(st, "term"))
	tag, _ = st.Clients.TagOf(50)
	assert.Equal(t, "2", tag)

	err := st.Scratchpads.Toggle(st, "nope")
	assert.True(t, errors.Is(err, ErrUnknownScratchpad))

	require.NoError(t, st.Unmanage(50))
	_, ok = st.Scratchpads.Window("term")
	assert.False(t, ok)
}

func TestArrange(t *testing.T) {
	st, _, _ := newTestState(t)
	cs := st.Clients
	cs.Insert(1)
	cs.Insert(2)
	cs.Insert(3)
	cs.SetFloating(3, stackset.Float{W: 0.5, H: 0.5})
	require.NoError(t, cs.InsertOn("2", 4))

	ps := st.Arrange()
	require.Len(t, ps, 4)

	k := cs.CurrentWorkspace()
	var tiled []xp.Window
	for _, w := range k.Windows() {
		if w != 3 {
			tiled = append(tiled, w)
		}
	}
	assert.Equal(t, Placement{Window: tiled[0], Rect: xp.Rectangle{Width: 1152, Height: 1080}}, ps[0])
	assert.Equal(t, Placement{Window: tiled[1], Rect: xp.Rectangle{X: 1152, Width: 768, Height: 1080}}, ps[1])
	assert.Equal(t, Placement{Window: 3, Rect: xp.Rectangle{X: 480, Y: 270, Width: 960, Height: 540}, Floating: true}, ps[2])
	assert.Equal(t, Placement{Window: 4, Rect: xp.Rectangle{X: 1920, Width: 1920, Height: 1080}}, ps[3])
}

func TestArrangeSkipsHiddenWorkspaces(t *testing.T) {
	st, _, _ := newTestState(t)
	require.NoError(t, st.Clients.InsertOn("3", 9))
	st.Spacing = layout.Spacing{Inner: 5, Outer: 5, Top: 30}

	assert.Empty(t, st.Arrange())

	require.NoError(t, st.Clients.View("3"))
	ps := st.Arrange()
	require.Len(t, ps, 1)
	assert.Equal(t, xp.Rectangle{X: 10, Y: 40, Width: 1900, Height: 1030}, ps[0].Rect)
}
