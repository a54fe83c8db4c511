package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "twinchat",
	Short: "A personal digital twin chatbot",
	Long: `Twinchat serves an AI persona of one specific person, answering visitor
questions from a curated knowledge corpus. Replies are grounded by
retrieval over the owner's own writing, filtered by moderation rules,
and adjusted in tone when a known friend or family member introduces
themselves.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "twinchat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
