package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/internal/logging"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/validation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LettersURI names the resource exposing the letter table.
const LettersURI = "numerology://letters"

// LettersResource is the body of the letters resource.
type LettersResource struct {
	Values map[string]int `json:"values" jsonschema_description:"Value of each letter A-Z"`
	Vowels []string       `json:"vowels" jsonschema_description:"Letters counted by the soul number"`
}

// Server wraps the numerology Engine and exposes it as an MCP Server.
type Server struct {
	engine    *numerology.Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for rejected calls and transport events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *numerology.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("numerology-mcp", strings.TrimSpace(numerology.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on port until ctx is cancelled. baseURL defaults to
// http://localhost:<port>.
func (s *Server) ServeSSE(ctx context.Context, port int, baseURL string) error {
	addr := fmt.Sprintf(":%d", port)
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: calculate_numbers
	calculateTool := mcp.NewTool("calculate_numbers",
		mcp.WithDescription("Calculate the six numerology numbers for a date of birth and a name written in letters A-Z."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Year of birth, 1900 or later")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month of birth, 1-12")),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of birth")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name in letters A-Z, single spaces between words")),
		mcp.WithString("mode", mcp.Description("Display mode: 'brief' (default) or 'detail'"), mcp.Enum("brief", "detail")),
		mcp.WithOutputSchema[presenter.View](),
	)
	s.mcpServer.AddTool(calculateTool, mcp.NewStructuredToolHandler(s.handleCalculate))

	// TOOL: describe_number
	describeTool := mcp.NewTool("describe_number",
		mcp.WithDescription("Explain what one numerology number means for a given kind."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("One of life_path, destiny, soul, personality, birthday, maturity"),
			mcp.Enum(kindNames()...)),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("1-9, 11, 22 or 33; soul and personality may also be 0")),
		mcp.WithString("mode", mcp.Description("Display mode: 'brief' (default) or 'detail'"), mcp.Enum("brief", "detail")),
		mcp.WithOutputSchema[presenter.Card](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))
}

func kindNames() []string {
	kinds := domain.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

func parseMode(args map[string]any) (domain.DisplayMode, error) {
	raw, ok := args["mode"].(string)
	if !ok || raw == "" {
		return domain.DefaultMode, nil
	}
	return domain.ParseMode(raw)
}

func (s *Server) handleCalculate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (presenter.View, error) {
	mode, err := parseMode(args)
	if err != nil {
		return presenter.View{}, err
	}
	in, err := validation.DecodeInput(args)
	if err != nil {
		return presenter.View{}, fmt.Errorf("invalid arguments: %w", err)
	}

	result, err := s.engine.Calculate(ctx, in)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			s.logger.Debug("MCP calculate: input rejected", "field", ve.Field)
			return presenter.View{}, errors.New(ve.Message)
		}
		return presenter.View{}, err
	}
	return s.engine.Present(result, mode), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (presenter.Card, error) {
	mode, err := parseMode(args)
	if err != nil {
		return presenter.Card{}, err
	}
	kindName, _ := args["kind"].(string)
	kind, err := domain.ParseKind(kindName)
	if err != nil {
		return presenter.Card{}, err
	}

	// JSON numbers arrive as float64.
	raw, ok := args["number"].(float64)
	if !ok || raw != float64(int(raw)) {
		return presenter.Card{}, fmt.Errorf("number must be an integer")
	}
	return presenter.Describe(s.engine.Catalog(), kind, int(raw), mode)
}

func (s *Server) registerResources() {
	// EXPOSE: numerology://letters
	s.mcpServer.AddResource(mcp.NewResource(LettersURI, "Letter Values",
		mcp.WithResourceDescription("Pythagorean value of each letter and the vowel set"),
		mcp.WithMIMEType("application/json"),
	), s.readLetters)
}

func (s *Server) readLetters(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	letters := s.engine.Catalog().Letters()
	body, err := json.Marshal(LettersResource{
		Values: letters.Values(),
		Vowels: letters.Vowels(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode letters: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LettersURI,
			MIMEType: "application/json",
			Text:     string(body),
		},
	}, nil
}
