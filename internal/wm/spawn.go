package wm

import (
	"errors"
	"fmt"
	"os/exec"

	xp "github.com/BurntSushi/xgb/xproto"
	"pkt.systems/pslog"
)

var ErrEmptyCommand = errors.New("empty command")

type Spawner interface {
	Spawn(argv []string) error
}

// ExecSpawner starts programs as children of the window manager and reaps
// them in the background.
type ExecSpawner struct {
	Log pslog.Logger
}

func (s ExecSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	c := exec.Command(argv[0], argv[1:]...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("could not start command %q: %w", argv, err)
	}
	go func() {
		// Ignore any error from the program itself.
		if err := c.Wait(); err != nil && s.Log != nil {
			s.Log.Debug("command exited", "argv", argv, "err", err)
		}
	}()
	return nil
}

func windowString(w xp.Window) string {
	return fmt.Sprintf("0x%x", uint32(w))
}
