// Package mcp serves the Monzo client as Model Context Protocol tools, over
// stdio when launched by a host process and over Streamable HTTP otherwise.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/bquirin/MonzoAPIWrapper/client"
	"github.com/bquirin/MonzoAPIWrapper/internal/config"
	"github.com/bquirin/MonzoAPIWrapper/mcp/internal/handlers"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server with every Monzo tool registered.
func NewServer(name, version string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		// Advertise empty resources & prompts so hosts stop getting -32601 for their list calls.
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)

	for _, h := range []toolRegisterer{
		handlers.NewAccountHandler(c),
		handlers.NewTransactionHandler(c),
		handlers.NewPotHandler(c),
	} {
		if err := h.RegisterTools(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewRouter mounts the MCP endpoint next to /metrics and /healthz.
func NewRouter(mcpHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/mcp", mcpHandler)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return r
}

// RunMCPServer loads configuration, builds the client and serves until the
// host closes stdio or the process receives SIGINT/SIGTERM.
func RunMCPServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Init()

	monzo, err := cfg.NewClient()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Monzo client")
		return err
	}
	log.Info().Str("base_url", monzo.BaseURL()).Msg("Monzo client created")

	s, err := NewServer(cfg.MCPServerName, cfg.MCPServerVersion, monzo)
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		log.Info().Msg("Starting Monzo MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

func serveHTTP(s *server.MCPServer, cfg *config.Config) error {
	log.Info().Str("addr", cfg.MCPAddr).Msg("Starting Monzo MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.MCPAddr,
		Handler:      NewRouter(streamSrv),
		ReadTimeout:  cfg.MCPReadTimeout,
		WriteTimeout: 0, // SSE streams have no deadline
		IdleTimeout:  cfg.MCPIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.MCPShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}

		log.Info().Msg("Shutting down MCP streamable server...")
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment.
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Launched by another process when stdin is not a terminal.
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
