package layout

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screen = xp.Rectangle{X: 0, Y: 0, Width: 1000, Height: 600}

func TestMainAndStack(t *testing.T) {
	l := &MainAndStack{MaxMain: 1, Ratio: 0.6, Step: 0.1}

	assert.Empty(t, l.Arrange(screen, 0))
	assert.Equal(t, []xp.Rectangle{screen}, l.Arrange(screen, 1))

	rs := l.Arrange(screen, 3)
	require.Len(t, rs, 3)
	assert.Equal(t, xp.Rectangle{X: 0, Y: 0, Width: 600, Height: 600}, rs[0])
	assert.Equal(t, xp.Rectangle{X: 600, Y: 0, Width: 400, Height: 300}, rs[1])
	assert.Equal(t, xp.Rectangle{X: 600, Y: 300, Width: 400, Height: 300}, rs[2])
}

func TestMainAndStackMessages(t *testing.T) {
	l := &MainAndStack{MaxMain: 1, Ratio: 0.6, Step: 0.1}

	assert.True(t, l.Handle(IncMain))
	assert.Equal(t, 2, l.MaxMain)
	assert.True(t, l.Handle(DecMain))
	assert.True(t, l.Handle(DecMain))
	assert.False(t, l.Handle(DecMain))
	assert.Equal(t, 0, l.MaxMain)

	assert.True(t, l.Handle(ShrinkMain))
	assert.InDelta(t, 0.5, l.Ratio, 1e-9)
	assert.True(t, l.Handle(ExpandMain))
	assert.InDelta(t, 0.6, l.Ratio, 1e-9)
}

func TestRatioStaysWithinSteps(t *testing.T) {
	for _, l := range []Layout{
		&MainAndStack{MaxMain: 1, Ratio: 0.6, Step: 0.1},
		&Tatami{Ratio: 0.6, Step: 0.1},
	} {
		t.Run(l.Name(), func(t *testing.T) {
			expands := 0
			for l.Handle(ExpandMain) {
				expands++
				require.Less(t, expands, 100)
			}
			assert.Equal(t, 3, expands)
			for _, r := range l.Arrange(screen, 3) {
				assert.GreaterOrEqual(t, r.Width, uint16(1), "%v", r)
			}

			shrinks := 0
			for l.Handle(ShrinkMain) {
				shrinks++
				require.Less(t, shrinks, 100)
			}
			assert.Equal(t, 8, shrinks)
			for _, r := range l.Arrange(screen, 3) {
				assert.GreaterOrEqual(t, r.Width, uint16(1), "%v", r)
			}
		})
	}
}

func TestMainColumnKeepsOnePixel(t *testing.T) {
	narrow := xp.Rectangle{Width: 10, Height: 10}
	for _, ratio := range []float64{0, 0.01, 0.99, 1} {
		rs := (&MainAndStack{MaxMain: 1, Ratio: ratio}).Arrange(narrow, 2)
		require.Len(t, rs, 2)
		assert.GreaterOrEqual(t, rs[0].Width, uint16(1))
		assert.GreaterOrEqual(t, rs[1].Width, uint16(1))
		assert.Equal(t, narrow.Width, rs[0].Width+rs[1].Width)
	}
}

func TestTatami(t *testing.T) {
	l := &Tatami{Ratio: 0.6, Step: 0.1}

	assert.Empty(t, l.Arrange(screen, 0))
	assert.Equal(t, []xp.Rectangle{screen}, l.Arrange(screen, 1))

	main := xp.Rectangle{X: 0, Y: 0, Width: 600, Height: 600}
	tests := []struct {
		n    int
		want []xp.Rectangle
	}{
		{2, []xp.Rectangle{main, {X: 600, Y: 0, Width: 400, Height: 600}}},
		{3, []xp.Rectangle{main,
			{X: 600, Y: 0, Width: 400, Height: 300},
			{X: 600, Y: 300, Width: 400, Height: 300},
		}},
		{4, []xp.Rectangle{main,
			{X: 600, Y: 0, Width: 400, Height: 300},
			{X: 600, Y: 300, Width: 200, Height: 300},
			{X: 800, Y: 300, Width: 200, Height: 300},
		}},
		{5, []xp.Rectangle{main,
			{X: 600, Y: 0, Width: 200, Height: 300},
			{X: 800, Y: 0, Width: 200, Height: 300},
			{X: 600, Y: 300, Width: 200, Height: 300},
			{X: 800, Y: 300, Width: 200, Height: 300},
		}},
		{7, []xp.Rectangle{main,
			{X: 600, Y: 0, Width: 200, Height: 300},
			{X: 800, Y: 0, Width: 200, Height: 300},
			{X: 600, Y: 300, Width: 133, Height: 300},
			{X: 733, Y: 300, Width: 133, Height: 300},
			{X: 866, Y: 300, Width: 134, Height: 300},
			{X: 866, Y: 300, Width: 134, Height: 300},
		}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, l.Arrange(screen, tc.n), "n=%d", tc.n)
	}

	assert.False(t, l.Handle(IncMain))
	assert.True(t, l.Handle(ShrinkMain))
	assert.InDelta(t, 0.5, l.Ratio, 1e-9)
	c := l.Clone().(*Tatami)
	c.Handle(ExpandMain)
	assert.InDelta(t, 0.5, l.Ratio, 1e-9)
}

func TestGrid(t *testing.T) {
	rs := Grid{}.Arrange(screen, 3)
	require.Len(t, rs, 3)
	assert.Equal(t, xp.Rectangle{X: 0, Y: 0, Width: 500, Height: 300}, rs[0])
	assert.Equal(t, xp.Rectangle{X: 500, Y: 0, Width: 500, Height: 300}, rs[1])
	assert.Equal(t, xp.Rectangle{X: 0, Y: 300, Width: 1000, Height: 300}, rs[2])
}

func TestMonocle(t *testing.T) {
	rs := Monocle{}.Arrange(screen, 2)
	assert.Equal(t, []xp.Rectangle{screen, screen}, rs)
}

func TestStackCloneIsIndependent(t *testing.T) {
	s := NewStack(&MainAndStack{MaxMain: 1, Ratio: 0.6, Step: 0.1}, Grid{}, Monocle{})
	c := s.Clone()

	c.Send(IncMain)
	assert.Equal(t, 1, s.Current().(*MainAndStack).MaxMain)
	assert.Equal(t, 2, c.Current().(*MainAndStack).MaxMain)

	c.Prev()
	assert.Equal(t, "monocle", c.Current().Name())
	c.Next()
	c.Next()
	assert.Equal(t, "grid", c.Current().Name())
	assert.Equal(t, "side", s.Current().Name())
}

func TestSpacing(t *testing.T) {
	g := Spacing{Inner: 5, Outer: 5, Top: 30}

	assert.Equal(t, xp.Rectangle{X: 5, Y: 35, Width: 990, Height: 560}, g.Screen(screen))
	assert.Equal(t, xp.Rectangle{X: 5, Y: 5, Width: 990, Height: 590}, g.Window(screen))

	tiny := xp.Rectangle{Width: 4, Height: 4}
	assert.Equal(t, tiny, g.Window(tiny), "too small to shrink")
}

func TestCenter(t *testing.T) {
	r := Center(screen, 0.8, 0.6)
	assert.Equal(t, xp.Rectangle{X: 100, Y: 120, Width: 800, Height: 360}, r)
}
