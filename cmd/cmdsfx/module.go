package cmdsfx

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fathom-search/fathom/internal/config/configfx"
	"github.com/fathom-search/fathom/internal/indexer"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/registry"
	"github.com/fathom-search/fathom/internal/scip"
	"github.com/fathom-search/fathom/internal/search"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// CommandRunner provides methods to run different application commands
type CommandRunner struct {
	config        *configfx.Config
	registry      registry.Store
	searchService *search.Service
	indexer       indexer.Indexer
	mcpServer     *server.MCPServer
}

// Params represents dependencies for command runner
type Params struct {
	fx.In

	Config        *configfx.Config
	Registry      registry.Store
	SearchService *search.Service   `optional:"true"`
	Indexer       indexer.Indexer   `optional:"true"`
	MCPServer     *server.MCPServer `optional:"true"`
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(params Params) *CommandRunner {
	return &CommandRunner{
		config:        params.Config,
		registry:      params.Registry,
		searchService: params.SearchService,
		indexer:       params.Indexer,
		mcpServer:     params.MCPServer,
	}
}

// RunAdd registers a project after validating the path is a directory
func (r *CommandRunner) RunAdd(name, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("path %q does not exist or is not a directory", path)
	}
	id, err := r.registry.Register(name, path)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateName) {
			return fmt.Errorf("project %q already exists", name)
		}
		return err
	}
	fmt.Printf("registered project %q (id %d)\n", name, id)
	return nil
}

// RunRemove removes a project; removing an absent name is a no-op
func (r *CommandRunner) RunRemove(name string) error {
	if err := r.registry.Remove(name); err != nil {
		return err
	}
	fmt.Printf("removed project %q\n", name)
	return nil
}

// RunList prints all registered projects ordered by name
func (r *CommandRunner) RunList() error {
	projects, err := r.registry.List()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no projects registered")
		return nil
	}
	for _, p := range projects {
		indexed := "never"
		if p.LastIndexedAt != nil {
			indexed = p.LastIndexedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s\n  path: %s\n  last indexed: %s\n", p.Name, p.Path, indexed)
	}
	return nil
}

// RunIndex executes semantic indexing for a registered project
func (r *CommandRunner) RunIndex(ctx context.Context, name string, rebuild bool) error {
	if r.indexer == nil {
		return fmt.Errorf("indexer not available")
	}
	report, err := r.indexer.RunIndex(ctx, name, rebuild)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d snippets from %d files (%d skipped)\n",
		report.SnippetsIndexed, report.FilesProcessed, report.FilesSkipped)
	return nil
}

// RunIndexScip builds the structural index for a registered project
func (r *CommandRunner) RunIndexScip(ctx context.Context, name string) error {
	root, err := r.registry.Resolve(name)
	if err != nil {
		return err
	}
	builder := scip.NewBuilder(r.config.ScipDir)
	out, err := builder.Build(ctx, root, name)
	if err != nil {
		return err
	}
	fmt.Printf("wrote structural index to %s\n", out)
	return nil
}

// RunSearch executes one search and prints the normalized result
func (r *CommandRunner) RunSearch(
	ctx context.Context,
	projectName string,
	modality models.Modality,
	query string,
	topK int,
) error {
	if r.searchService == nil {
		return fmt.Errorf("search service not available")
	}
	result, err := r.searchService.Search(ctx, projectName, modality, query, topK)
	if err != nil {
		return err
	}
	switch result.Modality {
	case models.ModalitySemantic:
		for i, m := range result.Semantic {
			fmt.Printf("Result %d (distance: %.4f):\n", i+1, m.Distance)
			fmt.Printf("File: %s\n", m.File)
			fmt.Printf("Method: %s.%s\n", m.Class, m.Method)
			fmt.Printf("Content: %s\n\n", m.Document)
		}
	case models.ModalityLiteral:
		for _, m := range result.Literal {
			fmt.Printf("%s:%d: %s\n", m.File, m.LineNumber, m.Text)
		}
	case models.ModalityStructural:
		for _, m := range result.Structural {
			fmt.Printf("%s\n  %s:%d:%d\n", m.Symbol, m.File, m.StartLine, m.StartChar)
		}
	}
	if result.Len() == 0 {
		fmt.Println("no matches")
	}
	return nil
}

// RunMCPServer executes the MCP server
func (r *CommandRunner) RunMCPServer(transport, address string) error {
	if r.mcpServer == nil {
		return fmt.Errorf("MCP server not available")
	}

	switch transport {
	case "stdio":
		return server.ServeStdio(r.mcpServer)
	case "http":
		addr := address
		if addr == "" {
			addr = ":8080"
		}
		httpSrv := server.NewStreamableHTTPServer(r.mcpServer)
		return httpSrv.Start(addr)
	case "sse":
		addr := address
		if addr == "" {
			addr = ":8080"
		}
		sseSrv := server.NewSSEServer(r.mcpServer,
			server.WithBaseURL(""),
			server.WithStaticBasePath("/mcp"),
		)
		return sseSrv.Start(addr)
	default:
		return fmt.Errorf(
			"unsupported transport: %s (supported: stdio, http, sse)",
			transport,
		)
	}
}

// Module provides command runner
var Module = fx.Module("commands",
	fx.Provide(NewCommandRunner),
)
