package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// seed loads a small demo dataset through the API: a kid with goals, a
// practitioner link, a recurring session block and one submitted report.
func init() {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data through the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()

			if _, err := checkStatus(c.R().SetBody(map[string]interface{}{
				"name": "Demo Kid", "age": 5, "gender": "female",
			}).Post("/api/kids")); err != nil {
				return fmt.Errorf("create kid: %w", err)
			}
			if _, err := checkStatus(c.R().Post("/api/kids/demo-kid/attach")); err != nil {
				return fmt.Errorf("attach kid: %w", err)
			}

			for _, g := range []map[string]interface{}{
				{"title": "Name five colors", "categoryId": "cognitive"},
				{"title": "Two-word sentences", "categoryId": "language"},
			} {
				if _, err := checkStatus(c.R().SetBody(g).Post("/api/kids/demo-kid/goals")); err != nil {
					return fmt.Errorf("add goal: %w", err)
				}
			}

			if _, err := checkStatus(c.R().SetBody(map[string]interface{}{
				"name": "Demo Therapist", "role": "speech",
			}).Post("/api/practitioners")); err != nil {
				return fmt.Errorf("create practitioner: %w", err)
			}

			start := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
			until := time.Now().AddDate(0, 0, 22).Format("2006-01-02")
			if _, err := checkStatus(c.R().SetBody(map[string]interface{}{
				"kidId": "demo-kid", "startDate": start, "until": until,
			}).Post("/api/sessions/recurring")); err != nil {
				return fmt.Errorf("schedule sessions: %w", err)
			}

			if _, err := checkStatus(c.R().SetBody(map[string]interface{}{
				"kidId":           "demo-kid",
				"therapistName":   "Demo Therapist",
				"sessionDate":     time.Now().Format("2006-01-02"),
				"cooperation":     4,
				"sessionDuration": 45,
				"notes":           "Seeded demo report",
			}).Post("/api/forms")); err != nil {
				return fmt.Errorf("submit form: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, "demo data loaded")
			return nil
		},
	}
	rootCmd.AddCommand(seedCmd)
}
