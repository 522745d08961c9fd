package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supportdesk-io/supportdesk-cli/internal/console"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/poller"
)

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Support staff console: queues, accepting tickets, chat",
}

// newConsole builds the console after the capability check. Regular users
// get a friendly error instead of the raw 403.
func (a *app) newConsole(cmd *cobra.Command) (*console.Console, error) {
	sess, err := a.requireSession()
	if err != nil {
		return nil, err
	}
	c, err := console.New(cmd.Context(), a.client, sess.User, a.toaster, a.logger, a.cfg.UI.PageSize)
	if err == console.ErrNotSupportStaff {
		return nil, fmt.Errorf("this account is not support staff")
	}
	return c, err
}

var supportQueuesCmd = &cobra.Command{
	Use:   "queues",
	Short: "Show the unassigned and assigned queues",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		c, err := a.newConsole(cmd)
		if err != nil {
			return err
		}
		if err := c.RefreshQueues(cmd.Context()); err != nil {
			return err
		}
		c.RefreshUnread(cmd.Context())
		return c.RenderQueues(os.Stdout)
	},
}

var acceptPriority string

var supportAcceptCmd = &cobra.Command{
	Use:   "accept <ticket-id>",
	Short: "Take an unassigned ticket, optionally setting its priority",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		c, err := a.newConsole(cmd)
		if err != nil {
			return err
		}

		var priority models.Priority
		if acceptPriority != "" {
			p, ok := models.ParsePriority(acceptPriority)
			if !ok {
				return fmt.Errorf("unknown priority %q (low, medium, high, critical)", acceptPriority)
			}
			priority = p
		}

		return c.Accept(cmd.Context(), args[0], priority, func(t *models.Ticket) bool {
			fmt.Printf("%s [%s/%s]\n%s\n", t.Title, t.Status.Label(), t.Priority.Label(), t.Description)
			return a.confirm("Accept this ticket?")
		})
	},
}

var supportChatCmd = &cobra.Command{
	Use:   "chat <ticket-id>",
	Short: "Open an interactive chat on a ticket",
	Long: `Opens the per-ticket chat. Plain lines are sent as messages;
commands start with a slash:

  /priority <low|medium|high|critical>   change the ticket's priority
  /close                                 close the ticket (asks first)
  /quit                                  leave the chat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		c, err := a.newConsole(cmd)
		if err != nil {
			return err
		}
		ticketID := args[0]

		if err := c.RefreshQueues(cmd.Context()); err != nil {
			return err
		}

		// Queue polling keeps running for the whole chat.
		p := poller.New(c, a.cfg.UI.RefreshInterval, a.logger)
		if err := p.Start(cmd.Context()); err != nil {
			return err
		}
		defer p.Stop()

		chat := c.Chat()
		if err := chat.Open(cmd.Context(), ticketID); err != nil {
			return err
		}
		defer chat.Close()

		if err := chat.RenderChat(os.Stdout); err != nil {
			return err
		}
		fmt.Println("Type a message, or /priority, /close, /quit.")

		for {
			line, ok := a.readLine(">")
			if !ok {
				return nil
			}
			switch {
			case line == "/quit":
				return nil

			case line == "/close":
				if err := chat.CloseTicket(cmd.Context(), ticketID, func(t *models.Ticket) bool {
					return a.confirm(fmt.Sprintf("Close %q?", t.Title))
				}); err != nil {
					return err
				}
				if chat.State() == console.ChatClosed {
					return nil
				}

			case strings.HasPrefix(line, "/priority"):
				arg := strings.TrimSpace(strings.TrimPrefix(line, "/priority"))
				p, ok := models.ParsePriority(arg)
				if !ok {
					fmt.Println("Usage: /priority <low|medium|high|critical>")
					continue
				}
				if err := chat.UpdatePriority(cmd.Context(), ticketID, p); err != nil {
					a.logger.Debug("priority update failed")
				}

			default:
				if err := chat.Send(cmd.Context(), line); err != nil {
					a.logger.Debug("send failed")
				}
			}
		}
	},
}

func init() {
	supportAcceptCmd.Flags().StringVar(&acceptPriority, "priority", "", "priority to set on accept")

	supportCmd.AddCommand(supportQueuesCmd)
	supportCmd.AddCommand(supportAcceptCmd)
	supportCmd.AddCommand(supportChatCmd)
}
