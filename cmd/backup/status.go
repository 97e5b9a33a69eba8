package main

import (
	"time"

	"github.com/spf13/cobra"

	"funenglish/internal/repository"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored progress record",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		persistence := a.persistence()
		updatedAt, ok, err := repository.NewKVRepository(a.db).UpdatedAt(persistence.Key())
		if err != nil {
			return err
		}

		cmd.Printf("Record: %s\n", persistence.Key())
		if !ok {
			cmd.Println("No progress saved yet")
			return nil
		}
		cmd.Printf("Last saved: %s\n", updatedAt.Local().Format(time.DateTime))

		store := persistence.Load()
		for _, name := range store.Categories() {
			rec, _ := store.Get(name)
			cmd.Printf("  %-10s %d/%d  %s\n", name, rec.Score, rec.Total, rec.Date.Local().Format(time.DateTime))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
