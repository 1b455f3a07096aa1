package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mbeutel/teamscribe/internal/config"
	"github.com/mbeutel/teamscribe/internal/instrumentation"
	"github.com/mbeutel/teamscribe/internal/logging"
	"github.com/mbeutel/teamscribe/internal/server"
	"github.com/mbeutel/teamscribe/internal/tools/auth_tools"
	"github.com/mbeutel/teamscribe/internal/tools/calendar_tools"
	"github.com/mbeutel/teamscribe/internal/tools/mail_tools"
	"github.com/mbeutel/teamscribe/internal/tools/transcript_tools"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server over stdio, exposing
Teams transcript, calendar and mail tools for AI assistants.

Configuration comes from environment variables (a .env file in the
working directory is read if present):

  TEAMSCRIBE_CLIENT_ID       Azure AD application (client) ID (required)
  TEAMSCRIBE_TENANT_ID       Azure AD tenant, e.g. 'common' or a tenant GUID (required)
  TEAMSCRIBE_CLIENT_SECRET   Client secret; omit for a public client using PKCE only
  TEAMSCRIBE_REDIRECT_URL    OAuth redirect URL when the app registration pins one
  TEAMSCRIBE_TIMEZONE        IANA timezone for calendar times, e.g. 'Europe/Berlin'

On the first tool call that needs Microsoft Graph, a browser window
opens for sign-in. Tokens are stored under the user config directory
and refreshed automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(debugMode, metricsEnabled, metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", false, "Expose Prometheus metrics on a dedicated port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

func runServe(debugMode, metricsEnabled bool, metricsAddr string) error {
	// Logging goes to stderr; stdout belongs to the MCP transport.
	logging.Setup(debugMode)

	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	instrConfig := instrumentation.DefaultConfig(version)
	instrConfig.Enabled = metricsEnabled

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	serverContext, err := server.NewServerContext(shutdownCtx, cfg, provider.Metrics())
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			slog.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	var metricsServer *server.MetricsServer
	if provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     metricsAddr,
			Provider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				slog.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	mcpSrv := mcpserver.NewMCPServer("teamscribe", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	slog.Info("starting MCP server on stdio",
		"version", version,
		"public_client", cfg.IsPublicClient(),
	)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Info("shutdown signal received")
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}

// registerAllTools registers all MCP tools with the server.
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Auth",
			register: func() error {
				return auth_tools.RegisterAuthTools(mcpSrv, sc)
			},
		},
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, sc)
			},
		},
		{
			name: "Transcripts",
			register: func() error {
				return transcript_tools.RegisterTranscriptTools(mcpSrv, sc)
			},
		},
		{
			name: "Mail",
			register: func() error {
				return mail_tools.RegisterMailTools(mcpSrv, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}
