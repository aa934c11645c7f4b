package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	kidsCmd := &cobra.Command{Use: "kids", Short: "Kid profile operations"}

	var name, gender string
	var age int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a kid profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name, "age": age}
			if gender != "" {
				payload["gender"] = gender
			}
			data, err := checkStatus(newClient().R().SetBody(payload).Post("/api/kids"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Kid name (required)")
	createCmd.Flags().IntVar(&age, "age", 0, "Kid age")
	createCmd.Flags().StringVarP(&gender, "gender", "g", "", "Kid gender")
	_ = createCmd.MarkFlagRequired("name")
	kidsCmd.AddCommand(createCmd)

	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List visible kids",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if all {
				req.SetQueryParam("all", "true")
			}
			data, err := checkStatus(req.Get("/api/kids"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().BoolVar(&all, "all", false, "Include kids assigned to other admins")
	kidsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get KID_ID",
		Short: "Get a kid by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkStatus(newClient().R().Get("/api/kids/" + args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	kidsCmd.AddCommand(getCmd)

	attachCmd := &cobra.Command{
		Use:   "attach KID_ID",
		Short: "Assign a kid to the calling admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkStatus(newClient().R().Post("/api/kids/" + args[0] + "/attach"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	kidsCmd.AddCommand(attachCmd)

	detachCmd := &cobra.Command{
		Use:   "detach KID_ID",
		Short: "Release the calling admin's kid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkStatus(newClient().R().Post("/api/kids/" + args[0] + "/detach"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	kidsCmd.AddCommand(detachCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete KID_ID",
		Short: "Delete a kid and all dependent records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkStatus(newClient().R().Delete("/api/kids/" + args[0]))
			return err
		},
	}
	kidsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(kidsCmd)
}
