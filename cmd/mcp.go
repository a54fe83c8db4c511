package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twinchat/twinchat/internal/config"
	"github.com/twinchat/twinchat/internal/logging"
	"github.com/twinchat/twinchat/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long:  `Exposes the twin as Model Context Protocol tools (ask_twin, search_knowledge, list_known_people) so MCP-aware clients can talk to it over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Stdout carries the protocol stream, so logs stay on stderr.
		logger, err := logging.New(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		comps, err := buildComponents(cfg, logger)
		if err != nil {
			return err
		}

		mcp.Version = Version
		srv := mcp.NewServer(comps.pipe, comps.retriever, comps.detector)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
