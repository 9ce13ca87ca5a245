package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	httpadapter "github.com/aretw0/numerology/pkg/adapters/http"
	mcpadapter "github.com/aretw0/numerology/pkg/adapters/mcp"
)

const shutdownTimeout = 5 * time.Second

// NewHTTPHandler builds the API router for app.
func NewHTTPHandler(app *App) http.Handler {
	opts := []httpadapter.Option{httpadapter.WithLogger(app.Logger)}
	if app.Metrics != nil {
		opts = append(opts, httpadapter.WithMetricsHandler(app.Metrics.Handler()))
	}
	return httpadapter.NewHandler(app.Engine, app.Sessions, opts...)
}

// Serve runs the HTTP API on port until ctx is cancelled.
func Serve(ctx context.Context, app *App, port int, out io.Writer) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           NewHTTPHandler(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Starting Numerology Server on %s", srv.Addr)
		app.Logger.Info("HTTP server listening", "addr", srv.Addr, "backend", app.Config.Session.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(out, "Start shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Numerology Server stopped gracefully")
		return nil
	}
}

// MCPOptions selects the MCP transport.
type MCPOptions struct {
	Transport string
	Port      int
	BaseURL   string
}

// ServeMCP runs the MCP server. With stdio, stdout carries JSON-RPC, so the
// standard logger is pointed at stderr.
func ServeMCP(ctx context.Context, app *App, opts MCPOptions) error {
	srv := mcpadapter.NewServer(app.Engine, mcpadapter.WithLogger(app.Logger))

	switch opts.Transport {
	case "stdio":
		log.SetOutput(os.Stderr)
		app.Logger.Info("Starting Numerology MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		app.Logger.Info("Starting Numerology MCP Server (SSE)", "port", opts.Port)
		err := srv.ServeSSE(ctx, opts.Port, opts.BaseURL)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
