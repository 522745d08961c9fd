package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/live"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/views"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow live ticket events for your tickets",
	Long: `Subscribes to the notification feed and prints an alert whenever one
of your tickets changes. The subscription reconnects on its own; press
Ctrl-C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		state := views.NewState(sess.User)
		list := views.NewListView(state, a.client.Tickets, a.toaster, a.logger, a.cfg.UI.PageSize)

		channel := live.NewChannel(live.Config{
			URL:               a.cfg.Live.URL,
			ReconnectDelay:    a.cfg.Live.ReconnectDelay,
			InitialRetryDelay: a.cfg.Live.InitialRetryDelay,
			Logger:            a.logger,
			Handler: func(n models.Notification) {
				// Only events about this user's own tickets surface.
				if n.Ticket == nil || n.Ticket.ReporterEmail != sess.User.Email {
					return
				}
				a.toaster.Info(n.Describe())

				if state.ActiveTab() != views.TabList {
					return
				}
				vm, err := list.Load(ctx)
				if err != nil {
					a.logger.Debug("list refresh after event failed", zap.Error(err))
					return
				}
				if err := list.Render(os.Stdout, vm); err != nil {
					a.logger.Debug("list render failed", zap.Error(err))
				}
			},
		})

		fmt.Fprintln(os.Stderr, "Watching for ticket events. Ctrl-C to stop.")
		if err := channel.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}
