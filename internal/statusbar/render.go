// Package statusbar renders the workspace and scratchpad state as xmobar
// markup and feeds it to a bar process.
package statusbar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pinwm/pinwm/internal/stackset"
)

var ErrUnclassifiedTag = errors.New("tag is not exactly one of occupied or empty")

// Style holds the colors of the markup. ClickCommand, when set, is a
// printf format taking the zero-based desktop index; tag tokens become
// clickable actions running it.
type Style struct {
	Occupied     string
	Empty        string
	Accent       string
	ClickCommand string
}

func DefaultStyle() Style {
	return Style{
		Occupied: "white",
		Empty:    "gray",
		Accent:   "#42cbf5",
	}
}

// Snapshot is the view of the client set that one render needs.
type Snapshot struct {
	Tags             []string
	Active           string
	VisibleElsewhere map[string]bool
	Occupied         map[string]bool
	Empty            map[string]bool
}

// SnapshotOf captures cs. Tags are in display order.
func SnapshotOf(cs *stackset.StackSet) Snapshot {
	snap := Snapshot{
		Tags:             cs.Tags(),
		Active:           cs.CurrentTag(),
		VisibleElsewhere: make(map[string]bool),
		Occupied:         make(map[string]bool),
		Empty:            make(map[string]bool),
	}
	for _, sc := range cs.Screens() {
		if t := sc.Workspace.Tag; t != snap.Active {
			snap.VisibleElsewhere[t] = true
		}
	}
	for _, k := range cs.Workspaces() {
		if k.Empty() {
			snap.Empty[k.Tag] = true
		} else {
			snap.Occupied[k.Tag] = true
		}
	}
	return snap
}

// Scratchpad is a scratchpad name and whether it is meant to be visible.
type Scratchpad struct {
	Name    string
	Visible bool
}

func colored(color, text string) string {
	return "<fc=" + color + ">" + text + "</fc>"
}

func wrapped(s Style, open, text, color, close string) string {
	return colored(s.Accent, open) + colored(color, text) + colored(s.Accent, close)
}

// Render produces one line of markup: a token per tag in snapshot order,
// then a token per scratchpad, separated by spaces.
func Render(snap Snapshot, pads []Scratchpad, s Style) (string, error) {
	tokens := make([]string, 0, len(snap.Tags)+len(pads))
	for _, tag := range snap.Tags {
		occupied, empty := snap.Occupied[tag], snap.Empty[tag]
		if occupied == empty {
			return "", fmt.Errorf("%w: %q", ErrUnclassifiedTag, tag)
		}
		color := s.Empty
		if occupied {
			color = s.Occupied
		}
		var tok string
		switch {
		case tag == snap.Active:
			tok = wrapped(s, "[", tag, color, "]")
		case snap.VisibleElsewhere[tag]:
			tok = wrapped(s, "(", tag, color, ")")
		default:
			tok = colored(color, tag)
		}
		tokens = append(tokens, clickable(s, tag, tok))
	}
	for _, p := range pads {
		if p.Visible {
			tokens = append(tokens, wrapped(s, "[", p.Name, s.Occupied, "]"))
		} else {
			tokens = append(tokens, wrapped(s, "(", p.Name, s.Empty, ")"))
		}
	}
	return strings.Join(tokens, " ") + "\n", nil
}

// clickable wraps tok in an xmobar action switching to tag's desktop. Tags
// that are not positive integers are left alone.
func clickable(s Style, tag, tok string) string {
	if s.ClickCommand == "" {
		return tok
	}
	n, err := strconv.Atoi(tag)
	if err != nil || n < 1 {
		return tok
	}
	return "<action=`" + fmt.Sprintf(s.ClickCommand, n-1) + "`>" + tok + "</action>"
}
