// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes journal tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/journal"
)

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp *server.MCPServer
	svc *journal.Service
}

// New creates a new MCP server with all journal tools registered.
func New(svc *journal.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List every journal entry with its id and tags."),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read the full raw content of a journal entry."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Entry path as returned by list_entries")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("get_entry_by_id",
		mcp.WithDescription("Find a journal entry by its short identifier and return its parsed form."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id (the frontmatter \"id\" field)")),
	), s.getEntryByID)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag with its entry count, sorted by count."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("create_entry",
		mcp.WithDescription("Create a new dated journal entry. Content MUST follow the "+
			"canonical entry format (metadata block with tags, id and pubdate, "+
			"separated from the body by a --- line). Read the contract first via "+
			"the get_entry_contract tool or the dagaz://entry-format resource."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Entry name; becomes part of the filename and the id")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags to apply")),
		mcp.WithString("body", mcp.Description("Optional body text")),
	), s.createEntry)

	s.mcp.AddTool(mcp.NewTool("get_entry_contract",
		mcp.WithDescription("Returns the canonical journal entry format contract. "+
			"Call this before creating entries to ensure correct structure."),
	), s.getEntryContract)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://entry-format", "Entry Format Contract",
			mcp.WithResourceDescription("Canonical journal entry format that all entries should follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, _ := s.svc.Entries(ctx)

	type item struct {
		Path string   `json:"path"`
		ID   string   `json:"id,omitempty"`
		Tags []string `json:"tags"`
	}
	items := make([]item, 0, len(entries))
	for _, e := range entries {
		id, _ := e.ID()
		items = append(items, item{Path: e.Path, ID: id, Tags: e.Tags()})
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.svc.ReadRaw(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getEntryByID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := s.svc.FindByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"path":     e.Path,
		"id":       id,
		"tags":     e.Tags(),
		"metadata": e.Metadata,
		"body":     e.Body,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts, _ := s.svc.TagCounts(ctx)
	var b strings.Builder
	for _, tc := range counts {
		fmt.Fprintf(&b, "%s %d\n", tc.Tag, tc.Count)
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("no tags found"), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) createEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tags := ""
	if v, tErr := req.RequireString("tags"); tErr == nil {
		tags = v
	}
	body := ""
	if v, bErr := req.RequireString("body"); bErr == nil {
		body = v
	}

	path, err := s.svc.Create(ctx, name, tags, body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) getEntryContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryFormatContract), nil
}

func (s *Server) readEntryFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}
