package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pinwm/pinwm/internal/config"
	"github.com/pinwm/pinwm/internal/layout"
	"github.com/pinwm/pinwm/internal/pinned"
	"github.com/pinwm/pinwm/internal/scratchpad"
	"github.com/pinwm/pinwm/internal/stackset"
	"github.com/pinwm/pinwm/internal/wm"
)

// chordColor highlights chords in the bindings table. fatih/color turns it
// off when stdout is not a terminal or NO_COLOR is set.
var chordColor = color.New(color.FgCyan)

type keyBinding struct {
	chord string
	help  string
	h     wm.KeyHandler
}

// tagKeys are the keys, pressed with Alt, that show the 1st, 2nd, etc.
// workspace. With Alt and Shift they move the focused window there.
var tagKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "minus", "plus"}

// unshifted maps tag keys that are typed with Shift to the key underneath,
// since Alt-Shift-equal arrives as A-S-equal rather than A-S-plus.
var unshifted = map[string]string{"plus": "equal"}

func moveKey(key string) string {
	if k, ok := unshifted[key]; ok {
		return k
	}
	return key
}

// keyBindings lists the key bindings for cfg. Later entries win when two
// share a chord. quit stops the window manager.
func keyBindings(cfg *config.Config, quit func()) []keyBinding {
	mod := func(key string) string { return cfg.ModKey + "-" + key }
	screen := func(i int) wm.KeyHandler {
		return wm.Modify(func(cs *stackset.StackSet) { cs.FocusScreen(i) })
	}
	toScreen := func(i int) wm.KeyHandler {
		return wm.Modify(func(cs *stackset.StackSet) { cs.MoveFocusedToScreen(i) })
	}

	kbs := []keyBinding{
		{mod("Return"), "swap the focused window down", wm.Modify((*stackset.StackSet).SwapDown)},
		{mod("C-Return"), "swap the focused window up", wm.Modify((*stackset.StackSet).SwapUp)},
		{mod("S-Return"), "spawn a terminal", wm.Spawn(strings.Fields(cfg.Terminal)...)},
		{mod("S-c"), "close the focused window", wm.KillFocused()},
		{mod("Tab"), "focus the next window", wm.Modify((*stackset.StackSet).FocusDown)},
		{mod("S-Tab"), "focus the previous window", wm.Modify((*stackset.StackSet).FocusUp)},
		{mod("w"), "focus screen 0", screen(0)},
		{mod("e"), "focus screen 1", screen(1)},
		{mod("S-w"), "move the focused window to screen 0", toScreen(0)},
		{mod("S-e"), "move the focused window to screen 1", toScreen(1)},
		{mod("space"), "next layout", wm.NextLayout()},
		{mod("S-space"), "previous layout", wm.PrevLayout()},
		{mod("comma"), "one more window in the main area", wm.SendLayoutMessage(layout.IncMain)},
		{mod("period"), "one less window in the main area", wm.SendLayoutMessage(layout.DecMain)},
		{mod("h"), "shrink the main area", wm.SendLayoutMessage(layout.ShrinkMain)},
		{mod("l"), "expand the main area", wm.SendLayoutMessage(layout.ExpandMain)},
		{mod("p"), "run dmenu on the focused screen", wm.KeyHandlerFunc(func(st *wm.State) error {
			idx := strconv.Itoa(st.Clients.CurrentScreen().Index)
			return st.Spawner.Spawn([]string{"dmenu_run", "-m", idx})
		})},
		{mod("A-d"), "log the window manager state", wm.LogState()},
		{mod("S-Escape"), "quit", wm.KeyHandlerFunc(func(*wm.State) error {
			quit()
			return nil
		})},
	}

	for _, p := range cfg.Scratchpads {
		if p.Key == "" {
			continue
		}
		kbs = append(kbs, keyBinding{
			expandMod(p.Key, cfg.ModKey), "toggle the " + p.Name + " scratchpad", scratchpad.ToggleHandler(p.Name),
		})
	}

	chords := make([]string, 0, len(cfg.SpawnKeys))
	for c := range cfg.SpawnKeys {
		chords = append(chords, c)
	}
	sort.Strings(chords)
	for _, c := range chords {
		cmd := cfg.SpawnKeys[c]
		kbs = append(kbs, keyBinding{expandMod(c, cfg.ModKey), "spawn " + cmd, wm.Spawn(strings.Fields(cmd)...)})
	}

	for i, tag := range cfg.Tags {
		if i >= len(tagKeys) {
			break
		}
		kbs = append(kbs,
			keyBinding{"A-" + tagKeys[i], "show workspace " + tag + " on its home screen", pinned.ShowHandler(tag)},
			keyBinding{"A-S-" + moveKey(tagKeys[i]), "move the focused window to workspace " + tag, wm.Modify(func(cs *stackset.StackSet) {
				cs.MoveFocusedToTag(tag)
			})},
		)
	}
	return kbs
}

// expandMod replaces the MOD placeholder in a configured chord.
func expandMod(chord, modKey string) string {
	parts := strings.Split(chord, "-")
	for i, p := range parts[:len(parts)-1] {
		if p == "MOD" {
			parts[i] = modKey
		}
	}
	return strings.Join(parts, "-")
}

func parseKeyBindings(kbs []keyBinding) (wm.Bindings, error) {
	raw := make(map[string]wm.KeyHandler, len(kbs))
	for _, kb := range kbs {
		raw[kb.chord] = kb.h
	}
	return wm.ParseBindings(raw)
}

func newBindingsCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "Print the key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			kbs := keyBindings(cfg, func() {})
			if _, err := parseKeyBindings(kbs); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			for _, kb := range kbs {
				fmt.Fprintf(tw, "%s\t%s\n", chordColor.Sprint(kb.chord), kb.help)
			}
			return tw.Flush()
		},
	}
}
