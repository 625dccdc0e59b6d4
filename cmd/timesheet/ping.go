package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send a test delivery to the configured webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.deliveryService()
			if err != nil {
				return err
			}
			out, err := svc.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("ping %s: %w", out.DeliveryID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", out.Sink, out.Status, out.DeliveryID)
			return nil
		},
	}
}
