package main

import (
	"github.com/spf13/cobra"

	"timesheet-assistant/config"
	"timesheet-assistant/pkg/log"
)

// app carries what every command needs. Tests set cfg and logger directly.
type app struct {
	cfg    *config.Config
	logger log.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "timesheet",
		Short: "Timesheet assistant from the terminal",
		Long: `timesheet logs time entries through the same guided questions and
free-text extraction as the service, and delivers them to the configured webhook.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.AddCommand(newChatCmd(a))
	root.AddCommand(newExtractCmd(a))
	root.AddCommand(newPingCmd(a))
	root.AddCommand(newAuthCmd(a))
	return root
}

func (a *app) init() error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logger == nil {
		a.logger = log.Init(log.ZapConfig{
			Level:    "warn",
			Mode:     a.cfg.Logger.Mode,
			Encoding: "console",
		})
	}
	return nil
}
