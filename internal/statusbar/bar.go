package statusbar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/pinwm/pinwm/internal/extension"
	"github.com/pinwm/pinwm/internal/scratchpad"
	"github.com/pinwm/pinwm/internal/wm"
)

var ErrNoBarCommand = errors.New("no bar command")

// Bar is the input stream of the external status bar.
type Bar struct {
	w     io.Writer
	style Style
	last  string
}

// NewBar writes markup to w in DefaultStyle.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w, style: DefaultStyle()}
}

// StartBar starts argv and writes markup to its standard input. The process
// is killed when ctx is done.
func StartBar(ctx context.Context, argv []string) (*Bar, error) {
	if len(argv) == 0 {
		return nil, ErrNoBarCommand
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("bar stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start bar %q: %w", argv, err)
	}
	go cmd.Wait()
	return &Bar{w: stdin, style: DefaultStyle()}, nil
}

func (b *Bar) Style() Style { return b.style }

// SetStyle changes the colors used from the next render on.
func (b *Bar) SetStyle(s Style) { b.style = s }

// Write sends one rendered line. Lines identical to the previous one are
// still written; the bar may have been restarted.
func (b *Bar) Write(line string) error {
	if _, err := io.WriteString(b.w, line); err != nil {
		return fmt.Errorf("write bar: %w", err)
	}
	b.last = line
	return nil
}

// Last is the most recently written line.
func (b *Bar) Last() string { return b.last }

// Close closes the bar's input. A bar process exits on EOF.
func (b *Bar) Close() error {
	if c, ok := b.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Hook renders the state with the Bar and scratchpad Tracker registered in
// the extension store, and writes the result to the bar. Nothing is written
// if rendering fails. Failures are returned for the caller of Refresh to log.
func Hook() wm.RefreshHook {
	return func(st *wm.State) error {
		bar, err := extension.Get[Bar](&st.Ext)
		if err != nil {
			return err
		}
		tr, err := extension.Get[scratchpad.Tracker](&st.Ext)
		if err != nil {
			return err
		}
		names := tr.Names()
		pads := make([]Scratchpad, len(names))
		for i, n := range names {
			pads[i] = Scratchpad{Name: n, Visible: tr.IsVisible(n)}
		}
		line, err := Render(SnapshotOf(st.Clients), pads, bar.Style())
		if err != nil {
			return fmt.Errorf("status line render aborted: %w", err)
		}
		return bar.Write(line)
	}
}
