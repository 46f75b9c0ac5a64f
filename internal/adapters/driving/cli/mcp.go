package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrfq/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose medrfq to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction, validation and matching tools over MCP",
	Long: `Serve medrfq as a Model Context Protocol server.

Tools: extract_line_items, validate_medicines, rank_vendors, list_documents.
Stored RFQs are also published as medrfq://documents/{id} resources, with a
CSV rendition of their line items.

The server reads JSON-RPC from stdio unless --port is given, in which case it
serves streamable HTTP on that port.

Examples:
  medrfq mcp serve
  medrfq mcp serve --port 8080

Assistant configuration:
  {"mcpServers": {"medrfq": {"command": "medrfq", "args": ["mcp", "serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Extraction: extractionService,
		Validation: validationService,
		Matching:   matchingService,
		Document:   documentService,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
