package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"funenglish/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Restore records from a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		if inputPath == "" {
			return errors.New("--input is required, use - for stdin")
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		backupService := service.NewBackupService(a.db, a.logger)
		if inputPath == "-" {
			err = backupService.ImportFromReader(cmd.InOrStdin())
		} else {
			err = backupService.Import(filepath.Clean(inputPath))
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		cmd.Printf("Import complete: %s\n", inputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("input", "i", "", "Backup file path, - for stdin")
}
