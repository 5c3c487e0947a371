package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mansoor/social-support-agent/internal/config"
	"github.com/mansoor/social-support-agent/internal/db"
	"github.com/mansoor/social-support-agent/internal/enablement"
	"github.com/mansoor/social-support-agent/internal/extraction"
	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/observability"
	"github.com/mansoor/social-support-agent/internal/pipeline"
	"github.com/mansoor/social-support-agent/internal/report"
	"github.com/mansoor/social-support-agent/internal/scoring"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process one applicant's documents into an eligibility decision",
	Long: `Runs the full decision pipeline over the supplied documents: extraction -> consolidation -> validation -> scoring -> decision -> enablement -> summary.

Any subset of documents may be supplied; missing or unreadable documents degrade the run instead of failing it. Configuration can be loaded from a JSON file using --config; command-line arguments override config file values.`,
	RunE: runProcess,
}

var (
	processConfigPath string
	processIdentity   string
	processBank       string
	processCredit     string
	processAssets     string
	processModelPath  string
	processScorerURL  string
	processAPIKey     string
	processDBURL      string
	processReportDir  string
	processJSON       bool
	processVerbose    bool
)

func init() {
	// Config file flag (processed first)
	processCmd.Flags().StringVar(&processConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	processCmd.Flags().StringVar(&processIdentity, "identity-card", "", "Path to Emirates ID card image (png/jpeg)")
	processCmd.Flags().StringVar(&processBank, "bank-statement", "", "Path to bank statement CSV")
	processCmd.Flags().StringVar(&processCredit, "credit-report", "", "Path to credit report PDF")
	processCmd.Flags().StringVar(&processAssets, "assets", "", "Path to assets/liabilities CSV")
	processCmd.Flags().StringVar(&processModelPath, "model", "", "Path to local eligibility model file (mutually exclusive with --scorer-url)")
	processCmd.Flags().StringVar(&processScorerURL, "scorer-url", "", "Base URL of an external model server (mutually exclusive with --model)")
	processCmd.Flags().StringVar(&processReportDir, "report-dir", "", "Directory to write the case report into")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "Print the full result as JSON")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	processCmd.Flags().StringVar(&processAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	processCmd.Flags().StringVar(&processDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadProcessConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.IdentityCard == "" && cfg.BankStatement == "" && cfg.CreditReport == "" && cfg.AssetsLiabilities == "" {
		return fmt.Errorf("at least one document is required (--identity-card, --bank-statement, --credit-report, --assets)")
	}

	var llmClient llm.Client
	if cfg.APIKey != "" {
		llmClient, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer llmClient.Close()
	} else if cfg.Verbose {
		fmt.Println("No API key configured; identity card and credit report extraction will be skipped")
	}

	var scorer scoring.Scorer
	switch {
	case cfg.ModelPath != "" && cfg.ScorerURL != "":
		return fmt.Errorf("--model and --scorer-url are mutually exclusive")
	case cfg.ModelPath != "":
		model, err := scoring.NewModelCache().Load(cfg.ModelPath)
		if err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}
		scorer = model
	case cfg.ScorerURL != "":
		scorer = scoring.NewHTTPScorer(cfg.ScorerURL)
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to database: %v\n", err)
			fmt.Println("Continuing without persistence...")
		} else {
			defer database.Close()
		}
	}

	processor := extraction.NewProcessor(llmClient)
	bundle := processor.ExtractBundle(ctx, extraction.DocumentSet{
		Identity:          cfg.IdentityCard,
		BankStatement:     cfg.BankStatement,
		CreditReport:      cfg.CreditReport,
		AssetsLiabilities: cfg.AssetsLiabilities,
	})

	runner := &pipeline.Runner{
		Scorer:      scorer,
		Recommender: &enablement.Recommender{LLM: llmClient},
		Summarizer:  &report.Summarizer{LLM: llmClient},
		DB:          database,
		Printer:     observability.NewPrinter(os.Stdout),
		Verbose:     cfg.Verbose,
		ReportDir:   cfg.ReportDir,
	}
	if llmClient != nil {
		runner.Embedder = llmClient
	}

	state, err := runner.Run(ctx, bundle)
	if err != nil {
		return err
	}

	if processJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(state)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCanonicalRecord(&state.Record, state.Inconsistencies)
	printer.PrintAssessment(state.Assessment)
	printer.PrintDecision(state.Decision)
	printer.PrintEnablementPlan(state.Plan)
	if state.FinalSummary != "" {
		fmt.Printf("\n%s\n", state.FinalSummary)
	}
	if state.ReportPath != "" {
		fmt.Printf("\nCase report written to %s\n", state.ReportPath)
	}
	for _, e := range state.Errors {
		fmt.Printf("Warning: %s\n", e)
	}
	return nil
}

// loadProcessConfig merges the optional config file with explicit CLI flags;
// flags win when set.
func loadProcessConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if processConfigPath != "" {
		loaded, err := config.LoadConfig(processConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if processVerbose {
			fmt.Printf("Loaded config from: %s\n", processConfigPath)
		}
	}

	if cmd.Flags().Changed("identity-card") {
		cfg.IdentityCard = processIdentity
	}
	if cmd.Flags().Changed("bank-statement") {
		cfg.BankStatement = processBank
	}
	if cmd.Flags().Changed("credit-report") {
		cfg.CreditReport = processCredit
	}
	if cmd.Flags().Changed("assets") {
		cfg.AssetsLiabilities = processAssets
	}
	if cmd.Flags().Changed("model") {
		cfg.ModelPath = processModelPath
	}
	if cmd.Flags().Changed("scorer-url") {
		cfg.ScorerURL = processScorerURL
	}
	if cmd.Flags().Changed("report-dir") {
		cfg.ReportDir = processReportDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = processAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = processDBURL
	}
	cfg.Verbose = processVerbose

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
