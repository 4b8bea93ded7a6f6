package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Atiwari330/asana-agent/internal/config"
	"github.com/Atiwari330/asana-agent/internal/mcp"
	"github.com/Atiwari330/asana-agent/internal/web"
)

var serveHTTP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task-creation pipeline to an assistant",
	Long: `Runs the MCP server on stdio so a tool-calling assistant can invoke
create_task. With --http, runs the HTTP facade instead.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve the HTTP facade instead of MCP stdio")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	orch, store := buildPipeline(cfg)
	ledgerStore := openLedger(cfg)
	if ledgerStore != nil {
		defer ledgerStore.Close()
	}

	if serveHTTP {
		server := web.NewServer(orch, store, ledgerStore)
		return server.Run(cfg.Serve.Addr)
	}

	server := mcp.NewServer(orch, ledgerStore)
	return server.Run(context.Background())
}
