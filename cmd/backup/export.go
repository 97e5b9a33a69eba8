package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"funenglish/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database to a JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		backupService := service.NewBackupService(a.db, a.logger)
		if outputPath == "-" {
			return backupService.ExportToWriter(cmd.OutOrStdout())
		}

		// Generate default filename if not provided
		if outputPath == "" {
			outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
		}
		if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		if err := backupService.Export(outputPath); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			return err
		}
		cmd.Printf("Export complete: %s (%d bytes)\n", outputPath, info.Size())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file path, - for stdout (default: backup_YYYYMMDD_HHMMSS.json)")
}
