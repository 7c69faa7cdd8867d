package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nareshroyalc/Docify/pkg/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List entries written from this machine, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := history.DefaultPath()
		if err != nil {
			return err
		}
		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No entries recorded yet.")
			return nil
		}

		for _, rec := range records {
			confidence := ""
			if rec.Confidence > 0 {
				confidence = fmt.Sprintf(" (%.0f%% confidence)", rec.Confidence*100)
			}
			fmt.Printf("%s  [%s]  %s  via %s%s\n",
				rec.Timestamp, rec.Priority, rec.Title, rec.Provider, confidence)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show (0 for all)")
}
