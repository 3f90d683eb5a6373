// login.go implements the "waymark login" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/waymark-dev/waymark/internal/log"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store the session token",
	Long: `Authenticate against the roadmap backend and store the session
token locally. Subsequent commands and the interactive interface
reuse it until logout or expiry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Username: ")
		username, err = reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(username)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := env.Session.Login(cmd.Context(), username, string(password)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	_ = env.Logger.Append(log.LogEvent{Event: log.EventLogin, Username: username})
	fmt.Printf("Logged in as %s\n", username)
	return nil
}
