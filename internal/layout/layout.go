// Package layout computes tiled window rectangles. Layouts are pure: they
// take a screen rectangle and a window count and return one rectangle per
// window, in stacking order.
package layout

import (
	"math"

	xp "github.com/BurntSushi/xgb/xproto"
)

type orientation int

const (
	horizontal orientation = iota
	vertical
)

// Message adjusts a layout's parameters.
type Message int

const (
	IncMain Message = iota
	DecMain
	ExpandMain
	ShrinkMain
)

type Layout interface {
	Name() string
	Arrange(r xp.Rectangle, n int) []xp.Rectangle
	// Handle applies m and reports whether the layout changed.
	Handle(m Message) bool
	Clone() Layout
}

// split divides r into n equal parts along o.
func split(r xp.Rectangle, n int, o orientation) []xp.Rectangle {
	rs := make([]xp.Rectangle, n)
	for i := range rs {
		c := r
		switch o {
		case horizontal:
			i0 := (i + 0) * int(r.Width) / n
			i1 := (i + 1) * int(r.Width) / n
			c.X += int16(i0)
			c.Width = uint16(i1 - i0)
		case vertical:
			i0 := (i + 0) * int(r.Height) / n
			i1 := (i + 1) * int(r.Height) / n
			c.Y += int16(i0)
			c.Height = uint16(i1 - i0)
		}
		rs[i] = c
	}
	return rs
}

// MainAndStack puts up to MaxMain windows in a left column Ratio of the
// screen wide, and stacks the rest on the right.
type MainAndStack struct {
	MaxMain int
	Ratio   float64
	Step    float64
}

func (l *MainAndStack) Name() string { return "side" }

func (l *MainAndStack) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	if n <= 0 {
		return nil
	}
	if l.MaxMain == 0 || n <= l.MaxMain {
		k := l.MaxMain
		if k == 0 {
			k = n
		}
		return split(r, min(n, k), vertical)
	}
	mainR, stackR := splitMain(r, l.Ratio)
	rs := split(mainR, l.MaxMain, vertical)
	return append(rs, split(stackR, n-l.MaxMain, vertical)...)
}

// splitMain cuts r into a left column ratio of its width and the rest.
// Both parts keep at least one pixel when r is wide enough.
func splitMain(r xp.Rectangle, ratio float64) (mainR, restR xp.Rectangle) {
	mainW := int(math.Round(float64(r.Width) * ratio))
	if r.Width >= 2 {
		mainW = max(1, min(mainW, int(r.Width)-1))
	}
	mainR, restR = r, r
	mainR.Width = uint16(mainW)
	restR.X += int16(mainW)
	restR.Width -= uint16(mainW)
	return mainR, restR
}

// ratioEpsilon absorbs the rounding error of repeated steps.
const ratioEpsilon = 1e-9

// resize moves ratio by delta, keeping it within [step, 1-step]. ok is
// false, and ratio unchanged, when the move would leave that range.
func resize(ratio, delta, step float64) (next float64, ok bool) {
	if step <= 0 {
		return ratio, false
	}
	next = ratio + delta
	if next < step-ratioEpsilon || next > 1-step+ratioEpsilon {
		return ratio, false
	}
	return min(max(next, step), 1-step), true
}

func (l *MainAndStack) Handle(m Message) bool {
	switch m {
	case IncMain:
		l.MaxMain++
	case DecMain:
		if l.MaxMain == 0 {
			return false
		}
		l.MaxMain--
	case ExpandMain:
		r, ok := resize(l.Ratio, +l.Step, l.Step)
		if !ok {
			return false
		}
		l.Ratio = r
	case ShrinkMain:
		r, ok := resize(l.Ratio, -l.Step, l.Step)
		if !ok {
			return false
		}
		l.Ratio = r
	default:
		return false
	}
	return true
}

func (l *MainAndStack) Clone() Layout {
	c := *l
	return &c
}

// Tatami puts the first window in a left column Ratio of the screen wide
// and lays up to five more on the right like tatami mats: halves, then a
// half over two quarters, then quarters, then two over three. Windows past
// the sixth share the last mat.
type Tatami struct {
	Ratio float64
	Step  float64
}

func (l *Tatami) Name() string { return "tatami" }

func (l *Tatami) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []xp.Rectangle{r}
	}
	mainR, restR := splitMain(r, l.Ratio)
	rs := []xp.Rectangle{mainR}

	var mats []xp.Rectangle
	halves := split(restR, 2, vertical)
	switch rest := n - 1; {
	case rest == 1:
		mats = []xp.Rectangle{restR}
	case rest == 2:
		mats = halves
	case rest == 3:
		mats = append([]xp.Rectangle{halves[0]}, split(halves[1], 2, horizontal)...)
	case rest == 4:
		mats = append(split(halves[0], 2, horizontal), split(halves[1], 2, horizontal)...)
	default:
		mats = append(split(halves[0], 2, horizontal), split(halves[1], 3, horizontal)...)
	}
	rs = append(rs, mats...)
	for len(rs) < n {
		rs = append(rs, mats[len(mats)-1])
	}
	return rs
}

func (l *Tatami) Handle(m Message) bool {
	var delta float64
	switch m {
	case ExpandMain:
		delta = +l.Step
	case ShrinkMain:
		delta = -l.Step
	default:
		return false
	}
	r, ok := resize(l.Ratio, delta, l.Step)
	if !ok {
		return false
	}
	l.Ratio = r
	return true
}

func (l *Tatami) Clone() Layout {
	c := *l
	return &c
}

// Grid arranges windows in rows of ceil(sqrt(n)) columns. The last row
// shares its width between the windows it holds.
type Grid struct{}

func (Grid) Name() string { return "grid" }

func (Grid) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	var rs []xp.Rectangle
	for i, row := range split(r, rows, vertical) {
		k := cols
		if left := n - i*cols; left < k {
			k = left
		}
		rs = append(rs, split(row, k, horizontal)...)
	}
	return rs
}

func (Grid) Handle(Message) bool { return false }
func (Grid) Clone() Layout       { return Grid{} }

// Monocle gives every window the whole screen.
type Monocle struct{}

func (Monocle) Name() string { return "monocle" }

func (Monocle) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	rs := make([]xp.Rectangle, max(n, 0))
	for i := range rs {
		rs[i] = r
	}
	return rs
}

func (Monocle) Handle(Message) bool { return false }
func (Monocle) Clone() Layout       { return Monocle{} }
