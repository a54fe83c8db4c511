package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twinchat/twinchat/internal/config"
	"github.com/twinchat/twinchat/internal/db"
	"github.com/twinchat/twinchat/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations and feedback to a markdown file",
	Long:  `Writes stored conversations, feedback entries, and usage statistics to a single markdown document for offline review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		exporter := export.New(database, os.Stderr)
		if err := exporter.WriteFile(context.Background(), exportOutput); err != nil {
			return err
		}

		info, err := os.Stat(exportOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "\nExported to %s (%.1f KB)\n", exportOutput, float64(info.Size())/1024)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "CONVERSATIONS_EXPORT.md", "output file path")
	rootCmd.AddCommand(exportCmd)
}
