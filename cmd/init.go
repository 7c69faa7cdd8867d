package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nareshroyalc/Docify/pkg/configuration"
)

var (
	initDocID          string
	initProvider       string
	initFullName       string
	initServiceAccount string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration to ~/.docify/config.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configuration.DefaultConfig()
		if initDocID != "" {
			cfg.DocID = initDocID
		}
		if initProvider != "" {
			cfg.Provider = initProvider
		}
		if initFullName != "" {
			cfg.FullName = initFullName
		}
		if initServiceAccount != "" {
			cfg.ServiceAccountFile = initServiceAccount
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		dir, _ := configuration.ConfigDir()
		fmt.Printf("Configuration written to %s\n", dir)
		if cfg.DocID == "" {
			fmt.Println("Note: no doc_id set; pass --doc-id here or on 'generate'.")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initDocID, "doc-id", "", "Default destination document ID")
	initCmd.Flags().StringVar(&initProvider, "provider", "", "Provider: gemini or ollama")
	initCmd.Flags().StringVar(&initFullName, "full-name", "", "Author name used in prompts")
	initCmd.Flags().StringVar(&initServiceAccount, "service-account", "", "Path to the Google service account key file")
}
