package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	sessionsCmd := &cobra.Command{Use: "sessions", Short: "Session operations"}

	var kidID, date, sessionType string
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"kidId": kidID, "scheduledDate": date}
			if sessionType != "" {
				payload["type"] = sessionType
			}
			data, err := checkStatus(newClient().R().SetBody(payload).Post("/api/sessions"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	scheduleCmd.Flags().StringVarP(&kidID, "kid", "K", "", "Kid ID (required)")
	scheduleCmd.Flags().StringVarP(&date, "date", "d", "", "Scheduled date, YYYY-MM-DD (required)")
	scheduleCmd.Flags().StringVarP(&sessionType, "type", "t", "", "Session type: therapy or meeting")
	_ = scheduleCmd.MarkFlagRequired("kid")
	_ = scheduleCmd.MarkFlagRequired("date")
	sessionsCmd.AddCommand(scheduleCmd)

	var start, until string
	recurringCmd := &cobra.Command{
		Use:   "recurring",
		Short: "Schedule weekly sessions through a closing date",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"kidId": kidID, "startDate": start, "until": until}
			if sessionType != "" {
				payload["type"] = sessionType
			}
			data, err := checkStatus(newClient().R().SetBody(payload).Post("/api/sessions/recurring"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	recurringCmd.Flags().StringVarP(&kidID, "kid", "K", "", "Kid ID (required)")
	recurringCmd.Flags().StringVarP(&start, "start", "s", "", "First session date, YYYY-MM-DD (required)")
	recurringCmd.Flags().StringVarP(&until, "until", "u", "", "Last candidate date, YYYY-MM-DD (required)")
	recurringCmd.Flags().StringVarP(&sessionType, "type", "t", "", "Session type: therapy or meeting")
	_ = recurringCmd.MarkFlagRequired("kid")
	_ = recurringCmd.MarkFlagRequired("start")
	_ = recurringCmd.MarkFlagRequired("until")
	sessionsCmd.AddCommand(recurringCmd)

	var status string
	listCmd := &cobra.Command{
		Use:   "list KID_ID",
		Short: "List a kid's sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if status != "" {
				req.SetQueryParam("status", status)
			}
			data, err := checkStatus(req.Get("/api/kids/" + args[0] + "/sessions"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")
	sessionsCmd.AddCommand(listCmd)

	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "List the calling admin's overdue sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkStatus(newClient().R().Get("/api/alerts"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sessionsCmd.AddCommand(alertsCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete SESSION_ID",
		Short: "Delete a session and its linked report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkStatus(newClient().R().Delete("/api/sessions/" + args[0]))
			return err
		},
	}
	sessionsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(sessionsCmd)
}
