package layout

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Stack is an ordered ring of layouts with one current layout.
type Stack struct {
	layouts []Layout
	current int
}

func NewStack(ls ...Layout) *Stack {
	return &Stack{layouts: ls}
}

// Clone deep-copies the stack so that each workspace can adjust its own
// layouts.
func (s *Stack) Clone() *Stack {
	c := &Stack{current: s.current, layouts: make([]Layout, len(s.layouts))}
	for i, l := range s.layouts {
		c.layouts[i] = l.Clone()
	}
	return c
}

func (s *Stack) Current() Layout {
	if len(s.layouts) == 0 {
		return Monocle{}
	}
	return s.layouts[s.current]
}

func (s *Stack) Next() {
	if n := len(s.layouts); n > 0 {
		s.current = (s.current + 1) % n
	}
}

func (s *Stack) Prev() {
	if n := len(s.layouts); n > 0 {
		s.current = (s.current + n - 1) % n
	}
}

// Send delivers m to the current layout.
func (s *Stack) Send(m Message) bool {
	return s.Current().Handle(m)
}

// Spacing shrinks screens by an outer gap plus reserved bar space, and
// windows by an inner gap.
type Spacing struct {
	Inner  int
	Outer  int
	Top    int
	Bottom int
}

// Screen returns the area of r available to tiled windows.
func (g Spacing) Screen(r xp.Rectangle) xp.Rectangle {
	return shrink(r, g.Outer, g.Outer+g.Top, g.Outer, g.Outer+g.Bottom)
}

// Window returns the rectangle a window gets inside its tile r.
func (g Spacing) Window(r xp.Rectangle) xp.Rectangle {
	return shrink(r, g.Inner, g.Inner, g.Inner, g.Inner)
}

func shrink(r xp.Rectangle, left, top, right, bottom int) xp.Rectangle {
	w := int(r.Width) - left - right
	h := int(r.Height) - top - bottom
	if w < 1 || h < 1 {
		return r
	}
	return xp.Rectangle{
		X:      r.X + int16(left),
		Y:      r.Y + int16(top),
		Width:  uint16(w),
		Height: uint16(h),
	}
}

// Center returns a rectangle of the given fractions of r, centered in r.
func Center(r xp.Rectangle, fw, fh float64) xp.Rectangle {
	w := uint16(float64(r.Width) * fw)
	h := uint16(float64(r.Height) * fh)
	return xp.Rectangle{
		X:      r.X + int16((r.Width-w)/2),
		Y:      r.Y + int16((r.Height-h)/2),
		Width:  w,
		Height: h,
	}
}
