// logout.go implements the "waymark logout" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waymark-dev/waymark/internal/log"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear stored credentials",
	Long: `Invalidate the server-side token and remove the locally stored
credentials. Local credentials are cleared even when the server
cannot be reached.`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	env.Session.Hydrate(cmd.Context())
	if err := env.Session.Logout(cmd.Context()); err != nil {
		fmt.Printf("Server logout failed (%v); local credentials cleared.\n", err)
	} else {
		fmt.Println("Logged out.")
	}

	_ = env.Logger.Append(log.LogEvent{Event: log.EventLogout})
	return nil
}
