package mcpfx

import (
	"context"

	"github.com/fathom-search/fathom/internal/config/configfx"
	"github.com/fathom-search/fathom/internal/indexer"
	appmcp "github.com/fathom-search/fathom/internal/mcp"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/scip"
	"github.com/fathom-search/fathom/internal/search"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// Params represents dependencies for MCP server
type Params struct {
	fx.In

	Config        *configfx.Config
	SearchService *search.Service
	Registry      registry.Store
	Indexer       indexer.Indexer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(params Params) *server.MCPServer {
	return appmcp.New(
		params.SearchService,
		params.Registry,
		params.Indexer,
		scip.NewBuilder(params.Config.ScipDir),
	)
}

// Lifecycle manages MCP server lifecycle
type Lifecycle struct {
	server *server.MCPServer
}

// NewLifecycle creates a new MCP lifecycle manager
func NewLifecycle(srv *server.MCPServer) *Lifecycle {
	return &Lifecycle{server: srv}
}

// Start initializes the MCP server
func (m *Lifecycle) Start(ctx context.Context) error {
	return nil
}

// Stop handles graceful shutdown
func (m *Lifecycle) Stop(ctx context.Context) error {
	// MCP server cleanup is handled by the framework
	return nil
}

// Module provides MCP server components
var Module = fx.Module("mcp",
	fx.Provide(
		NewMCPServer,
		NewLifecycle,
	),
)
