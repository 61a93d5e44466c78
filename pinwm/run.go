package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"pkt.systems/pslog"

	"github.com/pinwm/pinwm/internal/config"
	"github.com/pinwm/pinwm/internal/extension"
	"github.com/pinwm/pinwm/internal/layout"
	"github.com/pinwm/pinwm/internal/pinned"
	"github.com/pinwm/pinwm/internal/scratchpad"
	"github.com/pinwm/pinwm/internal/stackset"
	"github.com/pinwm/pinwm/internal/statusbar"
	"github.com/pinwm/pinwm/internal/wm"
)

var (
	xConn    *xgb.Conn
	rootXWin xp.Window

	eventTime xp.Timestamp

	// proactiveChan carries operations that happen of the program's own
	// accord, such as applying a reloaded config. These are sent to the
	// main goroutine from other goroutines. In comparison, examples of
	// reactive operations are responding to window creation and key
	// presses.
	proactiveChan = make(chan func())
)

type checker interface {
	Check() error
}

var checkers []checker

func check(c checker) {
	checkers = append(checkers, c)
}

type xEventOrError struct {
	event xgb.Event
	error xgb.Error
}

func defaultLayouts(l config.Layout) *layout.Stack {
	return layout.NewStack(
		&layout.MainAndStack{MaxMain: l.MaxMain, Ratio: l.Ratio, Step: l.RatioStep},
		&layout.Tatami{Ratio: l.Ratio, Step: l.RatioStep},
		layout.Grid{},
		layout.Monocle{},
	)
}

func spacing(l config.Layout) layout.Spacing {
	return layout.Spacing{Inner: l.InnerPx, Outer: l.OuterPx, Top: l.BarHeightPx}
}

// floatingClassSize is the size given to windows of the floating_classes.
var floatingClassSize = stackset.Float{W: 0.5, H: 0.5}

func manageRules(cfg *config.Config) []wm.ManageRule {
	var rules []wm.ManageRule
	for _, class := range cfg.FloatingClasses {
		f := floatingClassSize
		rules = append(rules, wm.ManageRule{Class: class, Float: &f})
	}
	for _, r := range cfg.Manage {
		rule := wm.ManageRule{Class: r.Class, Workspace: r.Workspace}
		if r.Float {
			rule.Float = &stackset.Float{W: r.Width, H: r.Height}
		}
		rules = append(rules, rule)
	}
	return rules
}

func namedScratchpads(cfg *config.Config) *wm.Scratchpads {
	pads := make([]wm.NamedScratchpad, len(cfg.Scratchpads))
	for i, p := range cfg.Scratchpads {
		pads[i] = wm.NamedScratchpad{
			Name:    p.Name,
			Command: strings.Fields(p.Command),
			Class:   p.Class,
			Size:    stackset.Float{W: p.Width, H: p.Height},
		}
	}
	return wm.NewScratchpads(pads...)
}

func barStyle(b config.Bar) statusbar.Style {
	return statusbar.Style{
		Occupied:     b.OccupiedColor,
		Empty:        b.EmptyColor,
		Accent:       b.AccentColor,
		ClickCommand: b.ClickCommand,
	}
}

func startBar(ctx context.Context, b config.Bar) (*statusbar.Bar, error) {
	var bar *statusbar.Bar
	if b.Command == "" {
		bar = statusbar.NewBar(os.Stdout)
	} else {
		var err error
		if bar, err = statusbar.StartBar(ctx, strings.Fields(b.Command)); err != nil {
			return nil, err
		}
	}
	bar.SetStyle(barStyle(b))
	return bar, nil
}

// newState builds the engine state for cfg on screens of the given
// rectangles, with the pinned directory, the scratchpad tracker and the bar
// in its extension store.
func newState(cfg *config.Config, rects []xp.Rectangle, conn wm.Conn, bar *statusbar.Bar, logger pslog.Logger) (*wm.State, error) {
	cs, err := stackset.New(cfg.Tags, rects)
	if err != nil {
		return nil, err
	}
	st := wm.NewState(cs, defaultLayouts(cfg.Layout), conn, logger)
	st.Rules = manageRules(cfg)
	st.Spacing = spacing(cfg.Layout)
	st.Scratchpads = namedScratchpads(cfg)

	extension.Add(&st.Ext, pinned.NewDirectory(cfg.PinnedTags, len(rects)))
	tracker := scratchpad.New(st.Scratchpads.Names()...)
	st.Scratchpads.OnRelease = tracker.Hide
	extension.Add(&st.Ext, tracker)
	extension.Add(&st.Ext, bar)
	st.ComposeOrSetRefreshHook(statusbar.Hook())
	return st, nil
}

// reload applies the parts of a changed config that can change at run
// time: the bar colors, the layout spacing and, given a sink, the log
// level. The log file stays the same.
func reload(st *wm.State, cfg *config.Config, sink *logSink) error {
	bar, err := extension.Get[statusbar.Bar](&st.Ext)
	if err != nil {
		return err
	}
	bar.SetStyle(barStyle(cfg.Bar))
	st.Spacing = spacing(cfg.Layout)
	if sink != nil {
		st.Log = sink.logger(cfg.Log.Level)
	}
	return st.Refresh()
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	sink, err := openLogSink(cfg.Log.File)
	if err != nil {
		return err
	}
	defer sink.close()
	logger := sink.logger(cfg.Log.Level)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	xgb.Logger = log.New(pslog.LogLogger(logger).Writer(), "xgb: ", 0)
	ctx, cancel := context.WithCancel(pslog.ContextWithLogger(ctx, logger))
	defer cancel()

	xConn, err = xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X: %w", err)
	}
	defer xConn.Close()
	if err = xinerama.Init(xConn); err != nil {
		return fmt.Errorf("xinerama: %w", err)
	}
	xSetup := xp.Setup(xConn)
	if len(xSetup.Roots) != 1 {
		return fmt.Errorf("X setup has unsupported number of roots: %d", len(xSetup.Roots))
	}
	xScreen := &xSetup.Roots[0]
	rootXWin = xScreen.Root

	if err := becomeTheWM(); err != nil {
		return err
	}
	if err := initAtoms(); err != nil {
		return err
	}
	if err := initCursor(xScreen); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}
	if err := initKeyboardMapping(); err != nil {
		return fmt.Errorf("keyboard mapping: %w", err)
	}
	rects, err := initScreens()
	if err != nil {
		return fmt.Errorf("screens: %w", err)
	}
	logger.Info("screens", "count", len(rects), "rects", fmt.Sprint(rects))

	bar, err := startBar(ctx, cfg.Bar)
	if err != nil {
		return err
	}
	defer bar.Close()

	conn := newXConnection()
	st, err := newState(cfg, rects, conn, bar, logger)
	if err != nil {
		return err
	}
	if err := initEWMH(xScreen, cfg.Tags); err != nil {
		return fmt.Errorf("ewmh: %w", err)
	}
	st.ComposeOrSetRefreshHook(updateEWMH)

	bindings, err := parseKeyBindings(keyBindings(cfg, cancel))
	if err != nil {
		return err
	}
	skipped, err := grabKeys(bindings.Chords())
	if err != nil {
		return err
	}
	for _, c := range skipped {
		logger.Warn("key not on keyboard", "chord", c.String())
	}

	if cfg.Startup != "" {
		if err := st.Spawner.Spawn([]string{cfg.Startup}); err != nil {
			logger.Error("startup", "err", err)
		}
	}
	for _, cmd := range cfg.Autostart {
		if err := st.Spawner.Spawn(strings.Fields(cmd)); err != nil {
			logger.Error("autostart", "command", cmd, "err", err)
		}
	}

	// Manage any existing windows.
	tree, err := xp.QueryTree(xConn, rootXWin).Reply()
	if err != nil {
		return err
	}
	for _, c := range tree.Children {
		if c == supportingWMCheckXWin {
			continue
		}
		attrs, err := xp.GetWindowAttributes(xConn, c).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xp.MapStateUnmapped {
			continue
		}
		conn.manage(st, c, false)
	}
	if err := st.Refresh(); err != nil {
		logger.Error("refresh", "err", err)
	}

	err = config.Watch(ctx, cfgPath, func(cfg *config.Config, err error) {
		select {
		case proactiveChan <- func() {
			if err != nil {
				st.Log.Error("config reload", "err", err)
				return
			}
			if err := reload(st, cfg, sink); err != nil {
				st.Log.Error("config reload", "err", err)
				return
			}
			st.Log.Info("config reloaded", "path", cfgPath)
		}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		logger.Warn("config will not be reloaded", "err", err)
	}

	return loop(ctx, st, conn, bindings)
}

func loop(ctx context.Context, st *wm.State, conn *xConnection, bindings wm.Bindings) error {
	eeChan := make(chan xEventOrError)
	go func() {
		for {
			e, err := xConn.WaitForEvent()
			if e == nil && err == nil {
				close(eeChan)
				return
			}
			eeChan <- xEventOrError{e, err}
		}
	}()
	for {
		for i, c := range checkers {
			if err := c.Check(); err != nil {
				st.Log.Debug("X request failed", "err", err)
			}
			checkers[i] = nil
		}
		checkers = checkers[:0]

		select {
		case <-ctx.Done():
			st.Log.Info("quitting")
			return nil
		case f := <-proactiveChan:
			f()
		case ee, ok := <-eeChan:
			if !ok {
				return fmt.Errorf("X connection closed")
			}
			if ee.error != nil {
				st.Log.Debug("X error", "err", ee.error)
				continue
			}
			switch e := ee.event.(type) {
			case xp.ClientMessageEvent:
				handleClientMessage(st, e)
			case xp.ConfigureNotifyEvent:
				// No-op.
			case xp.ConfigureRequestEvent:
				conn.handleConfigureRequest(e)
			case xp.CreateNotifyEvent:
				// No-op.
			case xp.DestroyNotifyEvent:
				conn.unmanage(st, e.Window)
			case xp.EnterNotifyEvent:
				eventTime = e.Time
				handleEnterNotify(st, e)
			case xp.KeyPressEvent:
				eventTime = e.Time
				handleKeyPress(st, bindings, e)
			case xp.KeyReleaseEvent:
				eventTime = e.Time
			case xp.MapNotifyEvent:
				// No-op.
			case xp.MappingNotifyEvent:
				if err := initKeyboardMapping(); err != nil {
					st.Log.Error("keyboard mapping", "err", err)
				} else if _, err := grabKeys(bindings.Chords()); err != nil {
					st.Log.Error("grab keys", "err", err)
				}
			case xp.MapRequestEvent:
				conn.manage(st, e.Window, true)
			case xp.UnmapNotifyEvent:
				conn.unmanage(st, e.Window)
			default:
				st.Log.Debug("unhandled event", "event", ee.event.String())
			}
		}
	}
}
