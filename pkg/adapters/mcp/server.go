package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/pkg/analysis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/sanitizer"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the story nodes.
const GraphURI = "story://graph"

// SearchResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type SearchResponse struct {
	Outcome  domain.Outcome `json:"outcome" jsonschema_description:"found, category_fallback, no_path or invalid_target"`
	Best     *domain.Path   `json:"best,omitempty" jsonschema_description:"The highest scoring complete path"`
	Explored int            `json:"explored" jsonschema_description:"Number of partial paths examined"`
	Complete int            `json:"complete_paths" jsonschema_description:"Number of complete paths recorded"`
	Top      []domain.Path  `json:"top" jsonschema_description:"Highest scoring paths, best first"`
}

// ValidateResponse reports whether a node sequence is walkable.
type ValidateResponse struct {
	Valid bool         `json:"valid"`
	Error string       `json:"error,omitempty"`
	Path  *domain.Path `json:"path,omitempty"`
}

// SearchArgs are the arguments of find_optimal_path.
type SearchArgs struct {
	Ending string `json:"ending"`
}

// TargetArgs are the arguments of find_path_to_ending.
type TargetArgs struct {
	Target string `json:"target"`
}

// ValidateArgs are the arguments of validate_path.
type ValidateArgs struct {
	Nodes []string `json:"nodes"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Story() *domain.Story
	FindOptimalPath(ctx context.Context, preferredEnding string) (*domain.SearchResult, error)
	FindOptimalPathToEnding(ctx context.Context, targetID string) (*domain.SearchResult, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	topN      int
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		topN:      analysis.DefaultTopN,
		logger:    logger,
		mcpServer: server.NewMCPServer("storypath-mcp", strings.TrimSpace(storypath.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("find_optimal_path",
		mcp.WithDescription("Find the highest scoring path from the start node. Optionally prefer one ending category."),
		mcp.WithString("ending", mcp.Description("Preferred ending category, e.g. best or good (optional)")),
		mcp.WithOutputSchema[SearchResponse](),
	), mcp.NewStructuredToolHandler(s.handleFindOptimalPath))

	s.mcpServer.AddTool(mcp.NewTool("find_path_to_ending",
		mcp.WithDescription("Find the highest scoring path that reaches one ending node."),
		mcp.WithString("target", mcp.Required(), mcp.Description("ID of a terminal node")),
		mcp.WithOutputSchema[SearchResponse](),
	), mcp.NewStructuredToolHandler(s.handleFindPathToEnding))

	s.mcpServer.AddTool(mcp.NewTool("validate_path",
		mcp.WithDescription("Check that a node sequence starts at the start node and follows declared choices."),
		mcp.WithArray("nodes", mcp.Required(), mcp.WithStringItems(), mcp.Description("Node IDs in order")),
		mcp.WithOutputSchema[ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidatePath))
}

func (s *Server) handleFindOptimalPath(ctx context.Context, request mcp.CallToolRequest, args SearchArgs) (SearchResponse, error) {
	ending, err := sanitizer.SanitizeInput(args.Ending)
	if err != nil {
		s.logger.Warn("MCP find_optimal_path: Input rejected", "err", err, "size", len(args.Ending))
		return SearchResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	res, err := s.engine.FindOptimalPath(ctx, ending)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search failed: %w", err)
	}
	return s.toResponse(res), nil
}

func (s *Server) handleFindPathToEnding(ctx context.Context, request mcp.CallToolRequest, args TargetArgs) (SearchResponse, error) {
	target, err := sanitizer.SanitizeInput(args.Target)
	if err != nil {
		s.logger.Warn("MCP find_path_to_ending: Input rejected", "err", err, "size", len(args.Target))
		return SearchResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	if target == "" {
		return SearchResponse{}, fmt.Errorf("target is required")
	}
	res, err := s.engine.FindOptimalPathToEnding(ctx, target)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search failed: %w", err)
	}
	return s.toResponse(res), nil
}

func (s *Server) handleValidatePath(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResponse, error) {
	if len(args.Nodes) == 0 {
		return ValidateResponse{}, fmt.Errorf("nodes is required")
	}
	path, err := s.engine.Story().WalkPath(args.Nodes)
	if err != nil {
		return ValidateResponse{Valid: false, Error: err.Error()}, nil
	}
	return ValidateResponse{Valid: true, Path: &path}, nil
}

func (s *Server) toResponse(res *domain.SearchResult) SearchResponse {
	resp := SearchResponse{
		Outcome:  res.Outcome(),
		Explored: res.ExploredPaths(),
		Complete: len(res.Paths()),
		Top:      analysis.TopN(res, s.topN),
	}
	if best, ok := res.Best(); ok {
		resp.Best = &best
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Current Story Graph",
		mcp.WithMIMEType("application/json"),
	), s.readGraph)
}

func (s *Server) readGraph(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.engine.Story().Nodes())
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
