// Package cli defines Cobra command definitions for the waymark CLI.
// This file contains the root command and the shared wiring helper.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/board"
	"github.com/waymark-dev/waymark/internal/config"
	"github.com/waymark-dev/waymark/internal/log"
	"github.com/waymark-dev/waymark/internal/tui"
	"github.com/waymark-dev/waymark/internal/tui/app"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "waymark",
	Short: "Terminal client for the Waymark product roadmap",
	Long: `Waymark is a terminal client for the product roadmap. Browse planned
work, vote on what matters to you, and discuss items in threaded
comments. Run without arguments for the interactive interface.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		model := tui.NewModel(env.Cfg, env.Client, env.Session, env.Board, env.Logger)
		return tui.Run(app.New(model))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env bundles everything a command needs: config, HTTP client, session,
// and the controllers wired to them.
type env struct {
	Cfg     *config.Config
	Client  *api.Client
	Store   *auth.CredStore
	Session *auth.Session
	Board   *board.Board
	Logger  *log.Logger
}

// newEnv builds the shared command environment rooted at the user's home
// directory. The client's token source and 401 hook are installed after
// construction since session and client reference each other.
func newEnv() (*env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	cfg := config.Load(home)

	stateDir := config.Dir(home)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	store, err := auth.OpenCredStore(filepath.Join(stateDir, "credentials.db"))
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	sess := auth.NewSession(client, store)
	client.SetTokenSource(sess.Token)
	client.SetUnauthorizedHook(sess.Invalidate)

	logger, err := log.NewLogger(stateDir)
	if err != nil {
		return nil, err
	}

	return &env{
		Cfg:     cfg,
		Client:  client,
		Store:   store,
		Session: sess,
		Board:   board.New(sess.RequireAuth),
		Logger:  logger,
	}, nil
}

// Close releases the environment's resources.
func (e *env) Close() {
	_ = e.Store.Close()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(listCmd)
}
