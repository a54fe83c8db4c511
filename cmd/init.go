package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twinchat/twinchat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a twinchat configuration interactively",
	Long:  `Walks through provider, persona, and server settings and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists; remove it first or use --config for a different path", cfgFile)
		}

		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("\nWrote %s\n", cfgFile)
		if envVar := config.APIKeyEnvVar(cfg.Provider); envVar != "" {
			fmt.Printf("Set %s before running `twinchat serve`.\n", envVar)
		}
		fmt.Printf("Put your corpus files (*.txt, *.md) in %s/ and run `twinchat serve`.\n", cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
