// Command supportdesk is a terminal client for the helpdesk ticket system:
// log in, browse and create tickets, and (for support staff) work the
// queues and chat with reporters.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/config"
	"github.com/supportdesk-io/supportdesk-cli/internal/logging"
	"github.com/supportdesk-io/supportdesk-cli/internal/session"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "supportdesk",
	Short: "Terminal client for the helpdesk ticket system",
	Long: `supportdesk is a terminal client for the helpdesk ticket system.

Regular users can browse, filter and create their own tickets. Support
staff additionally get the queue console and the per-ticket chat.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app bundles everything a command needs. Built lazily so that commands
// like "version" never touch config or disk.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *session.Store
	client  *api.Client
	toaster *ui.Toaster
	stdin   *bufio.Scanner
}

func newApp() (*app, error) {
	if err := config.Load(cfgFile); err != nil {
		return nil, err
	}
	cfg := config.Get()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(cfg.State.Dir)
	if err != nil {
		return nil, err
	}

	toaster := ui.NewToaster(os.Stderr)
	client := api.NewClient(&api.Config{
		BaseURL: cfg.API.BaseURL,
		Store:   store,
		Logger:  logger,
		Timeout: cfg.API.Timeout,
		Debug:   cfg.API.Debug,
		OnUnauthorized: func() {
			toaster.Error("Your session has expired. Please log in again with 'supportdesk login'.")
		},
	})

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		toaster: toaster,
		stdin:   bufio.NewScanner(os.Stdin),
	}, nil
}

// requireSession returns the stored session or fails the command the way a
// gated page redirects to login.
func (a *app) requireSession() (*session.Session, error) {
	sess := a.store.Get()
	if sess == nil {
		return nil, api.ErrNotLoggedIn
	}
	if sess.Expired() {
		_ = a.store.Clear()
		return nil, api.ErrNotLoggedIn
	}
	return sess, nil
}

// prompt reads one line of input with a label.
func (a *app) prompt(label string) string {
	line, _ := a.readLine(label)
	return line
}

// readLine reads one line with a label; ok is false once stdin is closed.
func (a *app) readLine(label string) (line string, ok bool) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	if !a.stdin.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.stdin.Text()), true
}

// confirm asks a yes/no question, defaulting to no.
func (a *app) confirm(question string) bool {
	answer := a.prompt(question + " [y/N]")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (YAML)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(ticketsCmd)
	rootCmd.AddCommand(supportCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
