package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pinwm/pinwm/internal/config"
	"github.com/pinwm/pinwm/internal/pinned"
)

func newDirectoryCmd(cfgPath *string) *cobra.Command {
	var screens int
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Print the home screen of each pinned workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			d := pinned.NewDirectory(cfg.PinnedTags, screens)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tSCREEN")
			for _, tag := range d.Tags() {
				home, _ := d.Lookup(tag)
				fmt.Fprintf(tw, "%s\t%d\n", tag, home)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&screens, "screens", 2, "number of connected screens")
	return cmd
}
