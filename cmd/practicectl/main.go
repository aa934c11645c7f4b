package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	keyFlag string
	rootCmd = &cobra.Command{
		Use:   "practicectl",
		Short: "CLI client for the practice backend REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Practice service base URL")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", os.Getenv("PRACTICE_ACCESS_KEY"), "Admin access key (or PRACTICE_ACCESS_KEY)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
