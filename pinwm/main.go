package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/pinwm/pinwm/internal/config"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("pinwm failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "pinwm",
		Short:         "A tiling X11 window manager with workspaces pinned to screens",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to the YAML config file")

	root.AddCommand(newBindingsCmd(&cfgPath))
	root.AddCommand(newDirectoryCmd(&cfgPath))
	return root
}
