package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pranjul332/TrustLens/internal/render"
)

var healthPlain bool

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the analysis backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		status := newClient(cfg).Health(cmd.Context())

		r := render.New(healthPlain || cfg.Output.Plain)
		r.Health(os.Stdout, status)
		if status.Status != "healthy" {
			return errors.New("backend is unhealthy")
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthPlain, "plain", false, "plain output without colors")
	rootCmd.AddCommand(healthCmd)
}
