package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nareshroyalc/Docify/pkg/llm"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Log several entries in a prompt-driven loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		assistant, cleanup, err := buildAssistant(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Println("🤖 Docify Documentation Assistant")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("📧 Service Account: %s\n", assistant.ServiceAccountEmail())
		fmt.Println("Share your Google Doc with this email!")

		reader := bufio.NewReader(os.Stdin)
		for {
			topic := promptLine(reader, "\n📝 Enter work topic (or 'quit'): ")
			if topic == "" {
				continue
			}
			if strings.EqualFold(topic, "quit") {
				break
			}

			details := promptLine(reader, "🔍 Additional details (optional): ")
			priorityInput := promptLine(reader, "⚡ Priority [low/medium/high] (default medium): ")
			priority, err := worklog.ParsePriority(priorityInput)
			if err != nil {
				fmt.Println("❌", err)
				continue
			}

			fmt.Println("🧠 Generating documentation...")
			outcome, err := assistant.Document(cmd.Context(), llm.Request{
				Topic:    topic,
				Details:  details,
				Priority: priority,
			}, cfg.ResolveDocID(""), true)
			if err != nil {
				fmt.Printf("❌ Failed to write entry: %v\n", err)
				continue
			}
			printOutcome(outcome)
		}

		fmt.Println("\nGoodbye!")
		return nil
	},
}

func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "quit"
	}
	if err == io.EOF && line == "" {
		return "quit"
	}
	return strings.TrimSpace(line)
}
