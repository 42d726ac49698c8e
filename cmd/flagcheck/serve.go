package main

import (
	"context"

	"github.com/spf13/cobra"

	"flagcheck/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	server := mcp.NewServer(e.cfg.Flags, version, e.logger)
	return server.Run(ctx, &sdk.StdioTransport{})
}
