// whoami.go implements the "waymark whoami" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waymark-dev/waymark/internal/auth"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	state := env.Session.Hydrate(cmd.Context())
	if state != auth.StateAuthenticated {
		return fmt.Errorf("not logged in; run: waymark login")
	}

	user := env.Session.User()
	fmt.Printf("%s", user.Username)
	if user.FirstName != "" || user.LastName != "" {
		fmt.Printf(" (%s %s)", user.FirstName, user.LastName)
	}
	fmt.Println()
	if user.Email != "" {
		fmt.Println(user.Email)
	}
	return nil
}
