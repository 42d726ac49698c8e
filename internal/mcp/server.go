package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"flagcheck/internal/config"
)

type Server struct {
	layout config.FlagLayout
	logger *zap.Logger
	mcp    *sdk.Server
}

func NewServer(layout config.FlagLayout, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		layout: layout,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "flagcheck",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
