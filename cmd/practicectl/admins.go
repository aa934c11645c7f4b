package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	adminsCmd := &cobra.Command{Use: "admins", Short: "Admin operations"}

	var name, email string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register an admin and print the access key",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name}
			if email != "" {
				payload["email"] = email
			}
			data, err := checkStatus(newClient().R().SetBody(payload).Post("/api/admins"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&name, "name", "n", "", "Admin name (required)")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Admin email")
	_ = registerCmd.MarkFlagRequired("name")
	adminsCmd.AddCommand(registerCmd)

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the admin identity for the configured key",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkStatus(newClient().R().Get("/api/me"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	adminsCmd.AddCommand(whoamiCmd)

	rootCmd.AddCommand(adminsCmd)
}
