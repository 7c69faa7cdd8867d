package cmd

import (
	"context"
	"fmt"

	"github.com/nareshroyalc/Docify/pkg/agent"
	"github.com/nareshroyalc/Docify/pkg/configuration"
	"github.com/nareshroyalc/Docify/pkg/docs"
	"github.com/nareshroyalc/Docify/pkg/events"
	"github.com/nareshroyalc/Docify/pkg/history"
	"github.com/nareshroyalc/Docify/pkg/llm"
	"github.com/nareshroyalc/Docify/pkg/utils"
)

// loadConfig loads and validates the configuration for a command run.
func loadConfig() (*configuration.Config, error) {
	cfg, err := configuration.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w (try 'docify init')", err)
	}
	return cfg, nil
}

// buildAssistant wires the full documentation stack from the configuration.
// The returned cleanup must be called before exit.
func buildAssistant(ctx context.Context, cfg *configuration.Config, bus *events.Bus) (*agent.Assistant, func(), error) {
	logger := utils.GetLogger()

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	generator := llm.NewGenerator(provider, cfg.FullName, logger)

	saPath := cfg.ServiceAccountPath()
	if saPath == "" {
		return nil, nil, fmt.Errorf("no service account file configured: set service_account_file in the config or SERVICE_ACCOUNT_FILE in the environment")
	}
	sink, err := docs.NewClient(ctx, saPath, cfg.APITimeout())
	if err != nil {
		return nil, nil, err
	}

	historyPath, err := history.DefaultPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(historyPath)
	if err != nil {
		return nil, nil, err
	}

	assistant := agent.New(generator, sink, store, bus, logger)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Logf("Could not close history store: %v", err)
		}
	}
	return assistant, cleanup, nil
}

// printOutcome shows the user what was written and how confident the
// generation was.
func printOutcome(outcome *agent.Outcome) {
	fmt.Printf("\n✅ Documentation written: %s\n", outcome.Entry.Title)
	fmt.Printf("📄 %s\n", outcome.DocURL)
	if m := outcome.Metrics; m != nil {
		marker := "✅"
		if m.ConfidenceScore < 0.7 {
			marker = "⚠️"
		}
		fmt.Printf("%s Validation: %s risk, %.0f%% confidence, %.2fx expansion\n",
			marker, m.HallucinationRisk, m.ConfidenceScore*100, m.ExpansionRatio)
	}
}
