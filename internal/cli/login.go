package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pranjul332/TrustLens/internal/auth"
)

var loginToken string

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token for authenticated analysis",
	Long: `Login saves an API token to ` + "`~/.trustlens/credentials`" + ` (mode 0600). The
token is attached as a Bearer credential to every analysis request.

The ` + auth.EnvToken + ` environment variable, when set, takes precedence over
the stored token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginToken == "" {
			return errors.New("a token is required: trustlens login --token <token>")
		}
		dir, err := auth.DefaultDir()
		if err != nil {
			return err
		}
		if err := auth.NewStore(dir).Save(loginToken); err != nil {
			return fmt.Errorf("saving credentials: %w", err)
		}
		fmt.Println("Token saved.")
		if os.Getenv(auth.EnvToken) != "" {
			fmt.Fprintf(os.Stderr, "Note: %s is set and takes precedence over the stored token.\n", auth.EnvToken)
		}
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := auth.DefaultDir()
		if err != nil {
			return err
		}
		if err := auth.NewStore(dir).Delete(); err != nil {
			return fmt.Errorf("removing credentials: %w", err)
		}
		fmt.Println("Token removed.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginToken, "token", "t", "", "API token to store")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
