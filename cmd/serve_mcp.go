package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidsponential/website/internal/dataapi"
	mcpserver "github.com/vidsponential/website/internal/mcp"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve the site content to AI agents over MCP",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing read-only tools for the site's niches, articles, scripts and prompt templates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := dataapi.NewClient(cfg.DataAPIURL, cfg.DataAPIKey,
			dataapi.WithTimeout(cfg.RequestTimeout),
		)
		src := dataapi.NewCachedSource(client, cfg.Cache.TTL)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "vidsite MCP server started on stdio (data API: %s)\n", cfg.DataAPIURL)

		srv := mcpserver.NewServer(src, mcpserver.Options{
			ExcerptLen:   cfg.Content.ArticleExcerptLen,
			ActiveStatus: cfg.Prompts.ActiveStatus,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}
