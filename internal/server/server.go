package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/countdown"
)

const (
	serverName    = "countdown"
	serverVersion = "1.0.0"
)

// Server is the MCP server exposing the deadline catalog and countdowns.
type Server struct {
	mcpServer    *server.MCPServer
	catalog      *catalog.Catalog
	clock        countdown.Clock
	expiredLabel string
}

// Remaining is the remaining_time payload.
type Remaining struct {
	ID        string                  `json:"id,omitempty"`
	Title     string                  `json:"title,omitempty"`
	Due       time.Time               `json:"due"`
	Remaining countdown.RemainingTime `json:"remaining"`
	Text      string                  `json:"text"`
}

// NewServer creates a countdown MCP server backed by cat. A nil clock uses
// the system clock.
func NewServer(cat *catalog.Catalog, clock countdown.Clock, expiredLabel string) *Server {
	if clock == nil {
		clock = countdown.RealClock{}
	}
	if expiredLabel == "" {
		expiredLabel = "time is up"
	}

	s := &Server{
		catalog:      cat,
		clock:        clock,
		expiredLabel: expiredLabel,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	kinds := strings.Join(catalog.Kinds, ", ")

	s.mcpServer.AddTool(
		mcp.NewTool("list_deadlines",
			mcp.WithDescription("List known deadlines ordered by due time, with their remaining time"),
			mcp.WithString("kind", mcp.Description("Filter by kind: "+kinds)),
		),
		s.handleListDeadlines,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("next_deadline",
			mcp.WithDescription("Get the next upcoming deadline; falls back to the earliest one when all have passed"),
			mcp.WithString("kind", mcp.Description("Filter by kind: "+kinds)),
		),
		s.handleNextDeadline,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("remaining_time",
			mcp.WithDescription("Compute the time remaining until a catalog deadline or an arbitrary due time"),
			mcp.WithString("id", mcp.Description("Catalog deadline ID")),
			mcp.WithString("due", mcp.Description("Due time in RFC3339 format (e.g. 2026-01-18T09:00:00Z), used when id is empty")),
		),
		s.handleRemainingTime,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_deadline",
			mcp.WithDescription("Add a deadline to the catalog for this session"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Unique deadline ID, e.g. a course code")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Deadline title")),
			mcp.WithString("due", mcp.Required(), mcp.Description("Due time in RFC3339 format")),
			mcp.WithString("kind", mcp.Description("Kind: "+kinds+" (default: deadline)")),
			mcp.WithString("code", mcp.Description("Optional course code")),
			mcp.WithString("location", mcp.Description("Optional location")),
		),
		s.handleAddDeadline,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("remove_deadline",
			mcp.WithDescription("Remove a deadline from the catalog"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Deadline ID")),
		),
		s.handleRemoveDeadline,
	)
}

func (s *Server) handleListDeadlines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := strings.ToLower(req.GetString("kind", ""))
	if kind != "" && !catalog.ValidKind(kind) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s", kind)), nil
	}

	entries, err := s.catalog.List(ctx, kind)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list deadlines: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No deadlines found."), nil
	}

	now := s.clock.Now()
	out := make([]Remaining, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.remaining(e.ID, e.Title, e.Due, now))
	}

	output, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleNextDeadline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := strings.ToLower(req.GetString("kind", ""))
	if kind != "" && !catalog.ValidKind(kind) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s", kind)), nil
	}

	now := s.clock.Now()
	e, err := s.catalog.Next(ctx, kind, now)
	if errors.Is(err, catalog.ErrNotFound) {
		return mcp.NewToolResultText("No deadlines found."), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to find next deadline: %v", err)), nil
	}

	output, _ := json.MarshalIndent(s.remaining(e.ID, e.Title, e.Due, now), "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleRemainingTime(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	dueStr := req.GetString("due", "")

	var out Remaining
	switch {
	case id != "" && dueStr != "":
		return mcp.NewToolResultError("set either id or due, not both"), nil

	case id != "":
		e, err := s.catalog.Get(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out = s.remaining(e.ID, e.Title, e.Due, s.clock.Now())

	case dueStr != "":
		due, err := time.Parse(time.RFC3339, dueStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due format: %v (use RFC3339, e.g. 2026-01-18T09:00:00Z)", err)), nil
		}
		out = s.remaining("", "", due, s.clock.Now())

	default:
		return mcp.NewToolResultError("id or due is required"), nil
	}

	output, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleAddDeadline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dueStr := req.GetString("due", "")
	if dueStr == "" {
		return mcp.NewToolResultError("due is required"), nil
	}

	due, err := time.Parse(time.RFC3339, dueStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid due format: %v (use RFC3339, e.g. 2026-01-18T09:00:00Z)", err)), nil
	}

	kind := strings.ToLower(req.GetString("kind", ""))
	if kind == "" {
		kind = catalog.KindDeadline
	}

	e := catalog.Entry{
		ID:       req.GetString("id", ""),
		Title:    req.GetString("title", ""),
		Code:     req.GetString("code", ""),
		Kind:     kind,
		Location: req.GetString("location", ""),
		Due:      due,
	}

	added, err := s.catalog.Add(ctx, e)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add deadline: %v", err)), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleRemoveDeadline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.catalog.Remove(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove deadline: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deadline %s removed.", id)), nil
}

func (s *Server) remaining(id, title string, due, now time.Time) Remaining {
	r := countdown.Compute(due, now)
	text := s.expiredLabel
	if !r.Expired {
		text = countdown.Compact(r)
	}
	return Remaining{
		ID:        id,
		Title:     title,
		Due:       due,
		Remaining: r,
		Text:      text,
	}
}
