package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative helpers",
	}

	adminCmd.AddCommand(newAdminBootstrapCmd())

	return adminCmd
}

// newAdminBootstrapCmd creates the admin account if it does not exist yet.
// Defaults come from ADMIN_USERNAME / ADMIN_PASSWORD so deployments can
// bootstrap without flags.
func newAdminBootstrapCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the admin account if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Ok      bool   `json:"ok"`
				Message string `json:"message"`
			}
			body := map[string]string{"username": username, "password": password}
			err := client.Post("/api/auth/register/", body, &result)
			if err != nil {
				if strings.Contains(err.Error(), "already taken") {
					fmt.Printf("admin account %q already exists\n", username)
					return nil
				}
				return err
			}

			fmt.Printf("admin account %q created\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", getEnvOrDefault("ADMIN_USERNAME", "admin"), "Admin username (env: ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", getEnvOrDefault("ADMIN_PASSWORD", "admin123"), "Admin password (env: ADMIN_PASSWORD)")
	return cmd
}
