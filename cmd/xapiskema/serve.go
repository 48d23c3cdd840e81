package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reoring/xapiskema/server"
)

func NewServeCommand(root *RootOptions) *cobra.Command {
	cfg := server.Config{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve statement validation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.MaxBytes = root.MaxBytes
			ln, err := net.Listen("tcp", cfg.Address)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()
			return server.New(root.log, cfg, root.serializer()).Run(ctx, ln)
		},
	}

	cmd.Flags().StringVar(&cfg.Address, "address", "localhost:8080", "listen address")
	cmd.Flags().IntVar(&cfg.RateLimit, "rate-limit", 0, "requests per client IP and minute (0 disables the limit)")

	return cmd
}
