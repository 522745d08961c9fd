package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/views"
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Browse and create your tickets",
}

var (
	listStatus   string
	listCategory string
	listPriority string
	listSearch   string
	listPage     int
)

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tickets with filters and pagination",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}

		filters := models.TicketFilters{SearchText: listSearch}
		if listStatus != "" {
			status, ok := models.ParseStatus(listStatus)
			if !ok {
				return fmt.Errorf("unknown status %q (open, in_progress, resolved, closed)", listStatus)
			}
			filters.Status = status
		}
		if listCategory != "" {
			category, ok := models.ParseCategory(listCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", listCategory)
			}
			filters.Category = category
		}
		if listPriority != "" {
			priority, ok := models.ParsePriority(listPriority)
			if !ok {
				return fmt.Errorf("unknown priority %q (low, medium, high, critical)", listPriority)
			}
			filters.Priority = priority
		}

		state := views.NewState(sess.User)
		list := views.NewListView(state, a.client.Tickets, a.toaster, a.logger, a.cfg.UI.PageSize)
		list.SetFilters(filters)
		if listPage > 1 {
			// Explicit page selection happens after the filter reset.
			state.SetPage(listPage)
		}

		vm, err := list.Load(cmd.Context())
		if err != nil {
			return err
		}
		return list.Render(os.Stdout, vm)
	},
}

var (
	createTitle       string
	createDescription string
	createPriority    string
	createCategory    string
)

var ticketsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}

		state := views.NewState(sess.User)
		form := views.NewCreateForm(state, a.client.Tickets, a.toaster, a.logger)

		form.Title = createTitle
		form.Description = createDescription
		if form.Title == "" {
			form.Title = a.prompt("Title")
		}
		if form.Description == "" {
			form.Description = a.prompt("Description")
		}
		if createPriority != "" {
			priority, ok := models.ParsePriority(createPriority)
			if !ok {
				return fmt.Errorf("unknown priority %q", createPriority)
			}
			form.Priority = priority
		}
		if createCategory != "" {
			category, ok := models.ParseCategory(createCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", createCategory)
			}
			form.Category = category
		}

		ticket, err := form.Submit(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Created ticket #%s\n", ticket.ID)
		return nil
	},
}

var ticketsShowCmd = &cobra.Command{
	Use:   "show <ticket-id>",
	Short: "Show one ticket in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}

		state := views.NewState(sess.User)
		list := views.NewListView(state, a.client.Tickets, a.toaster, a.logger, a.cfg.UI.PageSize)
		ticket, err := list.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return views.RenderDetail(os.Stdout, ticket)
	},
}

var ticketsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate ticket counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}

		stats, err := a.client.Tickets.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Total tickets: %d\n", stats.Total)
		for status, n := range stats.ByStatus {
			fmt.Printf("  %s: %d\n", models.Status(status).Label(), n)
		}
		return nil
	},
}

func init() {
	ticketsListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	ticketsListCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	ticketsListCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority")
	ticketsListCmd.Flags().StringVar(&listSearch, "search", "", "full-text search")
	ticketsListCmd.Flags().IntVar(&listPage, "page", 1, "page number")

	ticketsCreateCmd.Flags().StringVar(&createTitle, "title", "", "ticket title")
	ticketsCreateCmd.Flags().StringVar(&createDescription, "description", "", "problem description")
	ticketsCreateCmd.Flags().StringVar(&createPriority, "priority", "", "low, medium, high or critical")
	ticketsCreateCmd.Flags().StringVar(&createCategory, "category", "", "technical, billing, general, bug_report or feature_request")

	ticketsCmd.AddCommand(ticketsListCmd)
	ticketsCmd.AddCommand(ticketsCreateCmd)
	ticketsCmd.AddCommand(ticketsShowCmd)
	ticketsCmd.AddCommand(ticketsStatsCmd)
}
