// Package pinned gives workspace tags a fixed home screen, and shows a tag
// by swapping it onto its home screen.
package pinned

import (
	"fmt"

	"github.com/pinwm/pinwm/internal/extension"
	"github.com/pinwm/pinwm/internal/wm"
)

// Directory maps tags to their home screen index. It is built once at
// startup and is not updated when screens come and go.
type Directory struct {
	tags []string
	home map[string]int
}

// NewDirectory assigns tags to screens round-robin: with two screens, tag 0
// goes to screen 0, tag 1 to screen 1, tag 2 to screen 0 and so on. With no
// screens the directory is empty.
func NewDirectory(tags []string, screens int) *Directory {
	d := &Directory{home: make(map[string]int, len(tags))}
	if screens <= 0 {
		return d
	}
	for i, t := range tags {
		if _, dup := d.home[t]; dup {
			continue
		}
		d.tags = append(d.tags, t)
		d.home[t] = i % screens
	}
	return d
}

// Lookup returns the home screen of tag. ok is false for unpinned tags.
func (d *Directory) Lookup(tag string) (screen int, ok bool) {
	screen, ok = d.home[tag]
	return screen, ok
}

// Tags returns the pinned tags in construction order.
func (d *Directory) Tags() []string {
	return append([]string(nil), d.tags...)
}

// Show puts the workspace tagged tag on its home screen, focuses that
// screen and refreshes. The workspace previously on the home screen takes
// the place tag came from, whether another screen or the hidden list.
//
// Unpinned tags are ignored. An error means the Directory was never
// registered, or the client set does not know the tag or screen.
func Show(st *wm.State, tag string) error {
	d, err := extension.Get[Directory](&st.Ext)
	if err != nil {
		return err
	}
	home, ok := d.Lookup(tag)
	if !ok {
		st.Log.Debug("show: tag not pinned", "tag", tag)
		return nil
	}
	cs := st.Clients
	if sc, ok := cs.ScreenOf(tag); !ok || sc.Index != home {
		if err := cs.SwapWorkspace(home, tag); err != nil {
			return fmt.Errorf("show %q: %w", tag, err)
		}
	}
	cs.FocusScreen(home)
	return st.Refresh()
}

// ShowHandler binds Show for tag to a key.
func ShowHandler(tag string) wm.KeyHandler {
	return wm.KeyHandlerFunc(func(st *wm.State) error {
		return Show(st, tag)
	})
}
