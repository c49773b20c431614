package commands

import (
	"fmt"

	appmcp "github.com/fathom-search/fathom/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCommand starts an MCP server exposing search and registry tools.
func NewMCPCommand() *cobra.Command {
	var (
		flags     storeFlags
		transport string
		address   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run MCP server",
		Long:  "Run MCP server, provide project registry, indexing and search tools.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appmcp.NewWithOptions(appmcp.ServerOptions{
				RegistryDB: flags.registryDB,
				VectorDB:   flags.vectorDB,
				EmbedURL:   flags.embedURL,
				EmbedModel: flags.embedModel,
				ScipDir:    flags.scipDir,
			})
			if err != nil {
				return err
			}

			switch transport {
			case "stdio":
				return server.ServeStdio(s)
			case "http":
				// Streamable HTTP server on address, default ":8080" if empty
				addr := address
				if addr == "" {
					addr = ":8080"
				}
				httpSrv := server.NewStreamableHTTPServer(s)
				return httpSrv.Start(addr)
			case "sse":
				// SSE server exposes two endpoints; default base path "/mcp"
				addr := address
				if addr == "" {
					addr = ":8080"
				}
				sseSrv := server.NewSSEServer(s,
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
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "transport (stdio, http, sse)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "server address (http modes), e.g. :8080")
	return cmd
}
