// Package main provides the entry point for the social support agent CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "support_agent",
	Short: "Social support eligibility agent",
	Long:  "Processes applicant documents (ID card, bank statement, credit report, assets sheet) into an auditable benefit-eligibility decision with enablement recommendations, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
