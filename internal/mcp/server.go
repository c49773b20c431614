package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fathom-search/fathom/internal/constants"
	"github.com/fathom-search/fathom/internal/factory"
	"github.com/fathom-search/fathom/internal/indexer"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/scip"
	"github.com/fathom-search/fathom/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// searchTimeout bounds the blocking subprocess work behind literal and
// structural queries.
const searchTimeout = 30 * time.Second

// Server wires the search router and project registry into MCP tools.
type Server struct {
	server   *server.MCPServer
	searcher *search.Service
	registry registry.Store
	indexer  indexer.Indexer
	builder  *scip.Builder
}

// New returns an MCP server exposing project management, indexing and the
// three search modalities.
func New(
	searcher *search.Service,
	reg registry.Store,
	idx indexer.Indexer,
	builder *scip.Builder,
) *server.MCPServer {
	srv := &Server{
		server: server.NewMCPServer(
			"fathom/mcp",
			"0.1.0",
			server.WithToolCapabilities(true),
		),
		searcher: searcher,
		registry: reg,
		indexer:  idx,
		builder:  builder,
	}

	srv.server.AddTool(newSearchTool(), srv.handleSearch)
	srv.server.AddTool(newListProjectsTool(), srv.handleListProjects)
	srv.server.AddTool(newAddProjectTool(), srv.handleAddProject)
	srv.server.AddTool(newRemoveProjectTool(), srv.handleRemoveProject)
	srv.server.AddTool(newIndexProjectTool(), srv.handleIndexProject)
	srv.server.AddTool(newIndexScipTool(), srv.handleIndexScip)

	return srv.server
}

// ServerOptions contains configuration for a standalone MCP server.
type ServerOptions struct {
	RegistryDB string // SQLite path for the project registry
	VectorDB   string // SQLite path for vector collections
	EmbedURL   string // embedding API URL
	EmbedModel string // embedding model identifier
	ScipDir    string // directory holding <project>.scip index files
}

// NewWithOptions builds all components from the options and returns a ready
// MCP server. It is the non-fx entry point used by the mcp command.
func NewWithOptions(opts ServerOptions) (*server.MCPServer, error) {
	if opts.RegistryDB == "" {
		opts.RegistryDB = constants.DefaultRegistryDBName
	}
	if opts.VectorDB == "" {
		opts.VectorDB = constants.DefaultVectorDBName
	}
	if opts.EmbedURL == "" {
		opts.EmbedURL = constants.DefaultEmbedURL
	}
	if opts.ScipDir == "" {
		opts.ScipDir = constants.DefaultScipDir
	}

	f := factory.NewComponentFactory(factory.ComponentConfig{
		RegistryDB: opts.RegistryDB,
		VectorDB:   opts.VectorDB,
		EmbedURL:   opts.EmbedURL,
		EmbedModel: opts.EmbedModel,
		ScipDir:    opts.ScipDir,
	})
	components, err := f.CreateComponents()
	if err != nil {
		return nil, fmt.Errorf("initialize components failed: %w", err)
	}

	return New(
		components.Searcher,
		components.Registry,
		f.CreateIndexer(components),
		f.CreateScipBuilder(),
	), nil
}

func newSearchTool() mcp.Tool {
	return mcp.NewTool(
		"search",
		mcp.WithDescription(
			"Search a registered project: semantic (embedding similarity), "+
				"literal (exact text) or structural (symbol definitions, "+
				"dotted query like com.example.Main.greet)",
		),
		mcp.WithString("project_name", mcp.Description("Registered project name"), mcp.Required()),
		mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
		mcp.WithString(
			"search_type",
			mcp.Description("One of: semantic, literal, structural"),
			mcp.Required(),
		),
		mcp.WithNumber(
			"top_k",
			mcp.Description("Result count (semantic only)"),
			mcp.DefaultNumber(constants.DefaultTopK),
		),
	)
}

func newListProjectsTool() mcp.Tool {
	return mcp.NewTool(
		"list_projects",
		mcp.WithDescription("List registered projects with paths and last index times"),
	)
}

func newAddProjectTool() mcp.Tool {
	return mcp.NewTool(
		"add_project",
		mcp.WithDescription("Register a project directory under a unique name"),
		mcp.WithString("name", mcp.Description("Project name"), mcp.Required()),
		mcp.WithString("path", mcp.Description("Project directory"), mcp.Required()),
	)
}

func newRemoveProjectTool() mcp.Tool {
	return mcp.NewTool(
		"remove_project",
		mcp.WithDescription("Remove a project from the registry"),
		mcp.WithString("name", mcp.Description("Project name"), mcp.Required()),
	)
}

func newIndexProjectTool() mcp.Tool {
	return mcp.NewTool(
		"index_project",
		mcp.WithDescription("Build or refresh a project's semantic index"),
		mcp.WithString("name", mcp.Description("Project name"), mcp.Required()),
		mcp.WithBoolean(
			"rebuild",
			mcp.Description("Drop the collection first to clear orphaned entries"),
			mcp.DefaultBool(false),
		),
	)
}

func newIndexScipTool() mcp.Tool {
	return mcp.NewTool(
		"index_scip",
		mcp.WithDescription("Build a project's structural (SCIP) index via scip-java"),
		mcp.WithString("name", mcp.Description("Project name"), mcp.Required()),
	)
}

func (srv *Server) handleSearch(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	projectName, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	searchType, err := req.RequireString("search_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	modality, ok := models.ParseModality(searchType)
	if !ok {
		return mcp.NewToolResultError(
			fmt.Sprintf("unknown search_type %q (want semantic, literal or structural)", searchType),
		), nil
	}
	topK := req.GetInt("top_k", constants.DefaultTopK)

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	result, err := srv.searcher.Search(ctx, projectName, modality, query, topK)
	if err != nil {
		if errors.Is(err, registry.ErrProjectNotFound) {
			return mcp.NewToolResultError(
				fmt.Sprintf("project %q not found", projectName),
			), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(result), nil
}

func (srv *Server) handleListProjects(
	_ context.Context,
	_ mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	projects, err := srv.registry.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(projects), nil
}

func (srv *Server) handleAddProject(
	_ context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return mcp.NewToolResultError(
			fmt.Sprintf("path %q does not exist or is not a directory", path),
		), nil
	}
	id, err := srv.registry.Register(name, path)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateName) {
			return mcp.NewToolResultError(
				fmt.Sprintf("project %q already exists", name),
			), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("registered project %q (id %d)", name, id)), nil
}

func (srv *Server) handleRemoveProject(
	_ context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := srv.registry.Remove(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed project %q", name)), nil
}

func (srv *Server) handleIndexProject(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rebuild := req.GetBool("rebuild", false)

	report, err := srv.indexer.RunIndex(ctx, name, rebuild)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructuredOnly(report), nil
}

func (srv *Server) handleIndexScip(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	root, err := srv.registry.Resolve(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := srv.builder.Build(ctx, root, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote structural index to %s", out)), nil
}
