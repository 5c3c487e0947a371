package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mansoor/social-support-agent/internal/server"
)

var (
	servePort      int
	serveModelPath string
	serveScorerURL string
	serveReportDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for processing applicant documents and browsing runs, artifacts, and similar applicants.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveModelPath, "model", "", "Path to local eligibility model file")
	serveCmd.Flags().StringVar(&serveScorerURL, "scorer-url", "", "Base URL of an external model server")
	serveCmd.Flags().StringVar(&serveReportDir, "report-dir", "", "Directory to write case reports into")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		ModelPath:   serveModelPath,
		ScorerURL:   serveScorerURL,
		ReportDir:   serveReportDir,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
