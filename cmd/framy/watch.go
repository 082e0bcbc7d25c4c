package main

import (
	"github.com/spf13/cobra"
	"github.com/vearutop/framy"
)

func newWatchCmd(ff *frameFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Frame images as they are added to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), ff.verbose)

			f, err := newFramer(cmd, ff, logger)
			if err != nil {
				return err
			}

			w, err := framy.NewWatcher(f, args[0])
			if err != nil {
				return err
			}

			return w.Run(cmd.Context())
		},
	}
}
