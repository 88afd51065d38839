package main

import (
	"context"

	"github.com/g-rebels/kr-holiday/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			cal, err := newCalendar()
			if err != nil {
				return err
			}

			srv := server.New(cal, cfg.Server.Addr, cfg.Server.GetReadTimeout(), logger)
			return srv.Run(context.Background())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")

	return cmd
}
