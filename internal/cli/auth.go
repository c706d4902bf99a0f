package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Register and log in players",
	}

	authCmd.AddCommand(newAuthRegisterCmd())
	authCmd.AddCommand(newAuthLoginCmd())

	return authCmd
}

func newAuthRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Ok      bool   `json:"ok"`
				Message string `json:"message"`
			}
			body := map[string]string{"username": args[0], "password": args[1]}
			if err := client.Post("/api/auth/register/", body, &result); err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Check a player's credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Ok      bool   `json:"ok"`
				Message string `json:"message"`
			}
			body := map[string]string{"username": args[0], "password": args[1]}
			if err := client.Post("/api/auth/login/", body, &result); err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}
}
