// jira-mcp: MCP server for a Jira issue tracker.
//
// Exposes three tools (list issues, comment, close) to any MCP client,
// over streamable HTTP or stdio.
//
// Usage:
//
//	jira-mcp serve    # Start the HTTP server on 0.0.0.0:$PORT
//	jira-mcp stdio    # Serve the same tools over stdio
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/HendryAvila/jira-mcp/internal/config"
	"github.com/HendryAvila/jira-mcp/internal/logging"
	"github.com/HendryAvila/jira-mcp/internal/metrics"
	jiraserver "github.com/HendryAvila/jira-mcp/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(serveHTTP); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stdio":
		if err := run(serveStdio); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("jira-mcp v%s\n", jiraserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

type serveFunc func(cfg *config.Config, s *server.MCPServer, reg *prometheus.Registry, logger *zap.Logger) error

// run loads and validates the configuration, builds the MCP server and hands
// it to serve.
func run(serve serveFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	s, err := jiraserver.New(cfg, logger, m)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return serve(cfg, s, reg, logger)
}

func serveHTTP(cfg *config.Config, s *server.MCPServer, reg *prometheus.Registry, logger *zap.Logger) error {
	handler, err := jiraserver.NewHTTPHandler(s, reg, logger.Named("http"))
	if err != nil {
		return fmt.Errorf("creating HTTP handler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("jira-mcp starting",
			zap.String("version", jiraserver.Version),
			zap.String("addr", srv.Addr),
			zap.String("project", cfg.ProjectKey),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// serveStdio keeps stdout for the protocol; logs go to stderr.
func serveStdio(_ *config.Config, s *server.MCPServer, _ *prometheus.Registry, logger *zap.Logger) error {
	logger.Info("jira-mcp serving on stdio", zap.String("version", jiraserver.Version))
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `jira-mcp v%s - Jira issue tracker MCP server

Usage:
  jira-mcp serve    Start the MCP server (streamable HTTP on /mcp)
  jira-mcp stdio    Start the MCP server (stdio transport)
  jira-mcp version  Print the version

Environment:
  TRACKER_URL         Jira base URL, e.g. https://acme.atlassian.net (or JIRA_URL)
  TRACKER_EMAIL       Account email (or JIRA_EMAIL)
  TRACKER_TOKEN       API token (or JIRA_TOKEN)
  TRACKER_PROJECT     Project key for jira_get_issues (default %s)
  TRACKER_RATE_LIMIT  Max tracker requests per second, 0 = unlimited (default 0)
  PORT                HTTP port (default %d)
  LOG_LEVEL           debug, info, warn or error (default %s)

A .env file in the working directory is loaded when present.
`, jiraserver.Version, config.DefaultProjectKey, config.DefaultPort, config.DefaultLogLevel)
}
