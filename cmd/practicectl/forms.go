package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	formsCmd := &cobra.Command{Use: "forms", Short: "Session report operations"}

	var sessionID, kidID, therapist, date, notes string
	var cooperation, duration int
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a session report",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"kidId":       kidID,
				"sessionDate": date,
			}
			if sessionID != "" {
				payload["sessionId"] = sessionID
			}
			if therapist != "" {
				payload["therapistName"] = therapist
			}
			if notes != "" {
				payload["notes"] = notes
			}
			if cooperation > 0 {
				payload["cooperation"] = cooperation
			}
			if duration > 0 {
				payload["sessionDuration"] = duration
			}
			data, err := checkStatus(newClient().R().SetBody(payload).Post("/api/forms"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	submitCmd.Flags().StringVarP(&kidID, "kid", "K", "", "Kid ID (required)")
	submitCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session ID (omit to synthesize one)")
	submitCmd.Flags().StringVarP(&therapist, "therapist", "t", "", "Therapist name")
	submitCmd.Flags().StringVarP(&date, "date", "d", "", "Session date, YYYY-MM-DD (required)")
	submitCmd.Flags().StringVar(&notes, "notes", "", "Session notes")
	submitCmd.Flags().IntVar(&cooperation, "cooperation", 0, "Cooperation score")
	submitCmd.Flags().IntVar(&duration, "duration", 0, "Session duration in minutes")
	_ = submitCmd.MarkFlagRequired("kid")
	_ = submitCmd.MarkFlagRequired("date")
	formsCmd.AddCommand(submitCmd)

	var weekStart string
	listCmd := &cobra.Command{
		Use:   "list KID_ID",
		Short: "List a kid's session reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if weekStart != "" {
				req.SetQueryParam("weekStart", weekStart)
			}
			data, err := checkStatus(req.Get("/api/kids/" + args[0] + "/forms"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&weekStart, "week", "w", "", "Week start date, YYYY-MM-DD")
	formsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get FORM_ID",
		Short: "Get a session report by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkStatus(newClient().R().Get("/api/forms/" + args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	formsCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete FORM_ID",
		Short: "Delete a report and revert its session to scheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkStatus(newClient().R().Delete("/api/forms/" + args[0]))
			return err
		},
	}
	formsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(formsCmd)
}
