package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jdex/internal/daemon"
	"jdex/internal/rpc"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	client    *daemon.Client
}

func NewServer(socketPath string) (*Server, error) {
	client, err := daemon.ConnectOrSpawn(socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to daemon: %w", err)
	}

	s := &Server{client: client}

	mcpServer := server.NewMCPServer(
		"jdex",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s, nil
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("search_classes",
			mcp.WithDescription("Resolve a Java class name against the loaded javadoc archives. Accepts a fully-qualified name or a bare simple name (case-insensitive) and returns matching fully-qualified names."),
			mcp.WithString("query",
				mcp.Description("Class name to look up (e.g. \"Map\" or \"java.util.Map\")"),
				mcp.Required(),
			),
		),
		s.handleSearchClasses,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_class",
			mcp.WithDescription("Fetch the documentation for one class: description, modifiers, methods, and the address of its javadoc page. The name must be fully qualified; use search_classes first if unsure."),
			mcp.WithString("name",
				mcp.Description("Fully-qualified class name (e.g. \"java.util.Map.Entry\")"),
				mcp.Required(),
			),
			mcp.WithBoolean("frames",
				mcp.Description("Link the page through the javadoc frame set"),
			),
		),
		s.handleGetClass,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_libraries",
			mcp.WithDescription("List the loaded javadoc archives with their versions and class counts."),
		),
		s.handleListLibraries,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"jdoc://{library}/{class}",
			"Java class documentation",
			mcp.WithTemplateDescription("Read the documentation of a class by fully-qualified name. Class links inside descriptions resolve to these URIs."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleSearchClasses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	resp, err := s.client.Search(ctx, rpc.SearchRequest{Query: query})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(resp.Names) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no classes match %q", query)), nil
	}

	resultJSON, _ := json.MarshalIndent(resp.Names, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleGetClass(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)
	if name == "" {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	frames, _ := args["frames"].(bool)

	resp, err := s.client.GetClass(ctx, rpc.ClassRequest{Name: name, Frames: frames})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get class failed: %v", err)), nil
	}
	if resp == nil {
		return mcp.NewToolResultError(fmt.Sprintf("class %s not found; try search_classes", name)), nil
	}

	return mcp.NewToolResultText(renderClass(resp)), nil
}

func (s *Server) handleListLibraries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.client.Libraries(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list libraries failed: %v", err)), nil
	}

	if len(resp.Libraries) == 0 {
		return mcp.NewToolResultText("no javadoc archives loaded"), nil
	}

	resultJSON, _ := json.MarshalIndent(resp.Libraries, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	trimmed := strings.TrimPrefix(uri, "jdoc://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}

	// The library segment is informational; the class name alone
	// identifies the documentation.
	class := parts[1]
	if unescaped, err := url.PathUnescape(class); err == nil {
		class = unescaped
	}

	resp, err := s.client.GetClass(ctx, rpc.ClassRequest{Name: class})
	if err != nil {
		return nil, fmt.Errorf("getting class: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("class %s not found", class)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     renderClass(resp),
		},
	}, nil
}

// renderClass builds the markdown served for one class.
func renderClass(c *rpc.ClassResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	if c.Deprecated {
		b.WriteString("**Deprecated.**\n\n")
	}
	if c.Modifiers != "" {
		fmt.Fprintf(&b, "**Modifiers:** %s\n\n", c.Modifiers)
	}
	if c.Extends != "" {
		fmt.Fprintf(&b, "**Extends:** %s\n\n", c.Extends)
	}
	if c.Since != "" {
		fmt.Fprintf(&b, "**Since:** %s\n\n", c.Since)
	}
	if c.Library != "" {
		lib := c.Library
		if c.Version != "" {
			lib += " " + c.Version
		}
		fmt.Fprintf(&b, "**Library:** %s\n\n", lib)
	}
	if c.URL != "" {
		fmt.Fprintf(&b, "**Documentation:** %s\n\n", c.URL)
	}
	if c.Description != "" {
		b.WriteString(c.Description)
		b.WriteString("\n")
	}

	if len(c.Methods) > 0 {
		b.WriteString("\n## Methods\n\n")
		for _, m := range c.Methods {
			sig := m.Name + "(" + strings.Join(m.Parameters, ", ") + ")"
			fmt.Fprintf(&b, "- `%s`", sig)
			if m.Deprecated {
				b.WriteString(" (deprecated)")
			}
			if m.Description != "" {
				first := m.Description
				if i := strings.IndexByte(first, '\n'); i >= 0 {
					first = strings.TrimSpace(first[:i])
				}
				fmt.Fprintf(&b, ": %s", first)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}
