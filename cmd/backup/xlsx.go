package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"funenglish/internal/catalog"
	"funenglish/internal/service"
)

var xlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write the teacher progress report as a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath == "" {
			outputPath = fmt.Sprintf("funenglish_progress_%s.xlsx", time.Now().Format("20060102"))
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		reportService := service.NewReportService(catalog.Default(), a.progressService(), nil)
		if err := reportService.WriteXLSX(file); err != nil {
			return err
		}
		cmd.Printf("Report written: %s\n", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(xlsxCmd)
	xlsxCmd.Flags().StringP("output", "o", "", "Output file path (default: funenglish_progress_YYYYMMDD.xlsx)")
}
