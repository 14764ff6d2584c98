// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the notes and graph tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
	"github.com/vitaminx-2025/vitaminx-website/internal/service"
)

const contractURI = "vitaminx://data-contract"

// Server wraps the MCP server with the notes and graph tools.
type Server struct {
	mcp *server.MCPServer
	svc *service.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *service.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"VitaminX",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through notes, newest first."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (1-100, default 10)")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note. Read the data contract first via the "+
			"get_data_contract tool or the "+contractURI+" resource."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Note text, must not be blank")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Replace the text of an existing note."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("New note text")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("list_graph",
		mcp.WithDescription("Return every graph node and edge."),
	), s.listGraph)

	s.mcp.AddTool(mcp.NewTool("ai_mock",
		mcp.WithDescription("Return a canned idea built from the given texts."),
		mcp.WithArray("texts", mcp.Description("Input texts"), mcp.WithStringItems()),
	), s.aiMock)

	s.mcp.AddTool(mcp.NewTool("get_data_contract",
		mcp.WithDescription("Returns the notes and graph data contract. "+
			"Call this before creating or updating notes."),
	), s.getDataContract)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Data Contract",
			mcp.WithResourceDescription("Notes and graph data model and normalization rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDataContractResource,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(apperr.Message(err, err.Error()))
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", models.DefaultLimit)
	page, err := s.svc.ListNotes(ctx, query, limit, 0)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(page)
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.CreateNote(ctx, text)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(note)
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.UpdateNote(ctx, int64(id), text)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(note)
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteNote(ctx, int64(id)); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %d", id)), nil
}

func (s *Server) listGraph(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodes, err := s.svc.ListNodes(ctx)
	if err != nil {
		return toolError(err), nil
	}
	edges, err := s.svc.ListEdges(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{
		"nodes": nodes,
		"edges": edges,
	})
}

func (s *Server) aiMock(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	texts := req.GetStringSlice("texts", nil)
	return mcp.NewToolResultText(s.svc.AIMock(texts)), nil
}

func (s *Server) getDataContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DataContract), nil
}

func (s *Server) readDataContractResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     DataContract,
		},
	}, nil
}
