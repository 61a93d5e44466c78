/*
Pinwm is a keyboard driven tiling window manager for X11 whose workspaces are
pinned to screens. Every pinned workspace has a home screen, and showing it
always puts it there, so that with two monitors the odd workspaces live on
the left one and the even workspaces on the right one.


INSTALLATION

	go install github.com/pinwm/pinwm/pinwm@latest

Pinwm is designed to run from an Xsession session. Add this line to the end of
your ~/.xsession file:
	exec /path/to/your/pinwm --config ~/.config/pinwm/config.yaml
The status line is written to the standard input of the bar command in the
config file, or to standard output when there is none:
	exec pinwm | xmobar


USAGE

Each screen shows one workspace, tiled with the focused layout: a main area
on the left and a stack on the right, a main area beside tatami mats, a
grid, or one window at a time. The
window under the mouse pointer has the keyboard focus.

Alt and a number key shows that workspace on its home screen. If another
screen was showing it, that screen now shows the workspace that the home
screen showed. Alt and Shift and a number key moves the focused window to that
workspace; for workspace 12 that is Alt and Shift and '='. With the default config, workspaces 10, 11 and 12 are on the 0,
'-' and '+' keys and are not pinned, so Alt and those keys do nothing.

All other keyboard shortcuts involve holding down the mod key, the 'Windows'
key by default. Mod and Shift and Enter opens a terminal. Mod and Tab cycles
the focus through the windows of a workspace, and Mod and Enter swaps the
focused window with the next one. Mod and Space cycles through the layouts.
Mod and 'W' or 'E' focuses the first or second screen. Mod and '/' shows or
hides the terminal scratchpad, a floating terminal that follows you between
workspaces. Mod and Shift and 'C' closes the focused window, and Mod and Shift
and Escape quits pinwm. Run "pinwm bindings" for the full list.

The status line shows every workspace: the focused one in [brackets], those
shown on other screens in (parentheses), occupied ones in white and empty
ones in gray, followed by the scratchpads.


CUSTOMIZATION

The config file is YAML, by default $XDG_CONFIG_HOME/pinwm/config.yaml. It
sets the mod key, the workspace tags and which of them are pinned, the
scratchpads, the programs bound to keys, the layout gaps and the bar colors.
Changes to the bar colors, the gaps and the log level apply as soon as the
file is saved; anything else needs a restart.


DEVELOPMENT

When working on pinwm, it can be run in a nested X server such as Xephyr:
	Xephyr :9 +xinerama -screen 800x600 -screen 800x600 2>/dev/null &
	DISPLAY=:9 go run ./pinwm
*/
package main
