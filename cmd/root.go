package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docify",
	Short: "AI-assisted work-log documentation for Google Docs",
	Long: `Docify turns a short description of your work into a structured,
validated work-log entry and writes it into a shared Google Doc with
consistent formatting.

Available commands:
  generate     - Generate one entry and write it to the document
  interactive  - Prompt-driven loop for logging several entries
  serve        - Run the HTTP API
  history      - List entries written from this machine
  init         - Write a default configuration

Share the destination document with the service account email printed at
startup, or writes will be rejected.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
}
