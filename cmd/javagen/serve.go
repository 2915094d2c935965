package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/javagen/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve javagen over the Model Context Protocol on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(flags.debug)
			if err != nil {
				return err
			}
			defer log.Sync()
			return server.New(log).ServeStdio()
		},
	}
}
