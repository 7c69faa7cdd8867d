package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nareshroyalc/Docify/pkg/llm"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

var (
	generateDetails     string
	generateChallenges  string
	generatePriority    string
	generateDocID       string
	generateSkipMetrics bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate one work-log entry and write it to the document",
	Long: `Generates a structured work-log entry for the given topic using the
configured provider, validates the generation, and writes the formatted
entry to the destination Google Doc.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		priority, err := worklog.ParsePriority(generatePriority)
		if err != nil {
			return err
		}

		assistant, cleanup, err := buildAssistant(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Println("🧠 Generating documentation...")
		outcome, err := assistant.Document(cmd.Context(), llm.Request{
			Topic:      strings.Join(args, " "),
			Details:    generateDetails,
			Challenges: generateChallenges,
			Priority:   priority,
		}, cfg.ResolveDocID(generateDocID), !generateSkipMetrics)
		if err != nil {
			return err
		}

		printOutcome(outcome)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateDetails, "details", "d", "", "Additional details or accomplishments")
	generateCmd.Flags().StringVarP(&generateChallenges, "challenges", "c", "", "Challenges encountered")
	generateCmd.Flags().StringVarP(&generatePriority, "priority", "p", "medium", "Priority level: low, medium or high")
	generateCmd.Flags().StringVar(&generateDocID, "doc-id", "", "Destination document ID (overrides config)")
	generateCmd.Flags().BoolVar(&generateSkipMetrics, "skip-metrics", false, "Leave the generation metrics footer out of the document")
}
