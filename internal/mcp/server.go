// Package mcp exposes the processing pipeline as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"ucp/internal/pattern"
	"ucp/internal/session"
)

// Server wraps the MCP SDK server around one shared pipeline system.
// Handlers serialize on the mutex; the underlying System is not
// safe for concurrent calls.
type Server struct {
	MCPServer *sdkmcp.Server

	mu     sync.Mutex
	system *session.System
}

// NewServer creates an MCP server exposing the pipeline tools.
func NewServer(sys *session.System) *Server {
	s := &Server{system: sys}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "ucp", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "process",
		Description: "Run text through the full pipeline: bias scoring, compression, problem detection, and optional solution generation.",
	}, s.handleProcess)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_loop",
		Description: "Run bounded autonomous problem-solving cycles over the accumulated problems and store gaps.",
	}, s.handleRunLoop)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "status",
		Description: "Report session history aggregates and pattern store size.",
	}, s.handleStatus)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_patterns",
		Description: "List all stored solution patterns, ordered by ID.",
	}, s.handleListPatterns)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "bootstrap_patterns",
		Description: "Seed the pattern store with the canonical starter patterns.",
	}, s.handleBootstrap)
}

// --- Tool input/output types ---

type processInput struct {
	Text       string `json:"text" jsonschema:"text to analyze"`
	Autonomous bool   `json:"autonomous,omitempty" jsonschema:"generate solutions for detected problems and learn from them"`
}

type runLoopInput struct {
	Iterations int `json:"iterations,omitempty" jsonschema:"maximum cycles to run (default 3)"`
}

type statusInput struct{}

type listPatternsInput struct{}

type listPatternsOutput struct {
	Patterns []pattern.SolutionPattern `json:"patterns"`
	Total    int                       `json:"total"`
}

type bootstrapInput struct{}

type bootstrapOutput struct {
	Seeded []string `json:"seeded"`
	Total  int      `json:"total"`
}

// --- Tool handlers ---

func (s *Server) handleProcess(ctx context.Context, _ *sdkmcp.CallToolRequest, input processInput) (*sdkmcp.CallToolResult, session.Result, error) {
	if input.Text == "" {
		return nil, session.Result{}, fmt.Errorf("text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.system.Process(input.Text, input.Autonomous)
	if err != nil {
		return nil, session.Result{}, fmt.Errorf("process: %w", err)
	}
	return nil, *res, nil
}

func (s *Server) handleRunLoop(ctx context.Context, _ *sdkmcp.CallToolRequest, input runLoopInput) (*sdkmcp.CallToolResult, session.CycleReport, error) {
	iterations := input.Iterations
	if iterations <= 0 {
		iterations = 3
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.system.Loop(ctx, iterations)
	if err != nil {
		return nil, session.CycleReport{}, fmt.Errorf("run_loop: %w", err)
	}
	return nil, *report, nil
}

func (s *Server) handleStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, _ statusInput) (*sdkmcp.CallToolResult, session.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nil, *s.system.Status(), nil
}

func (s *Server) handleListPatterns(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listPatternsInput) (*sdkmcp.CallToolResult, listPatternsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patterns := s.system.Library().Patterns()
	return nil, listPatternsOutput{Patterns: patterns, Total: len(patterns)}, nil
}

func (s *Server) handleBootstrap(ctx context.Context, _ *sdkmcp.CallToolRequest, _ bootstrapInput) (*sdkmcp.CallToolResult, bootstrapOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded, err := s.system.Library().Bootstrap()
	if err != nil {
		return nil, bootstrapOutput{}, fmt.Errorf("bootstrap: %w", err)
	}

	ids := make([]string, 0, len(seeded))
	for _, p := range seeded {
		ids = append(ids, p.ID)
	}
	return nil, bootstrapOutput{Seeded: ids, Total: s.system.Library().Len()}, nil
}
