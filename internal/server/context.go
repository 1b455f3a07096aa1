package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mbeutel/teamscribe/internal/calendar"
	"github.com/mbeutel/teamscribe/internal/config"
	"github.com/mbeutel/teamscribe/internal/credentials"
	"github.com/mbeutel/teamscribe/internal/graph"
	"github.com/mbeutel/teamscribe/internal/instrumentation"
	"github.com/mbeutel/teamscribe/internal/mail"
	"github.com/mbeutel/teamscribe/internal/msauth"
	"github.com/mbeutel/teamscribe/internal/transcripts"
)

// ServerContext holds the state shared by all MCP tool handlers.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg   *config.Config
	store *credentials.Store
	auth  *msauth.Manager

	calendarClient    *calendar.Client
	transcriptsClient *transcripts.Client
	mailClient        *mail.Client

	metrics *instrumentation.Metrics

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext builds the shared state from the loaded configuration.
// The credential store directory is created here; no network traffic
// happens until the first tool call needs a token.
func NewServerContext(ctx context.Context, cfg *config.Config, metrics *instrumentation.Metrics) (*ServerContext, error) {
	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	auth := msauth.NewManager(cfg, store)
	auth.SetMetrics(metrics)
	api := graph.NewClient(graph.ClientConfig{Timezone: cfg.Timezone, Recorder: metrics})

	return &ServerContext{
		ctx:               shutdownCtx,
		cancel:            cancel,
		cfg:               cfg,
		store:             store,
		auth:              auth,
		calendarClient:    calendar.NewClient(auth, api),
		transcriptsClient: transcripts.NewClient(auth, api),
		mailClient:        mail.NewClient(auth, api),
		metrics:           metrics,
	}, nil
}

// Context returns the server's lifetime context. Tool handlers derive
// their request contexts from it so shutdown cancels in-flight calls.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// CredentialStore returns the on-disk credential store.
func (sc *ServerContext) CredentialStore() *credentials.Store {
	return sc.store
}

// Auth returns the token manager.
func (sc *ServerContext) Auth() *msauth.Manager {
	return sc.auth
}

// Calendar returns the calendar client.
func (sc *ServerContext) Calendar() *calendar.Client {
	return sc.calendarClient
}

// Transcripts returns the transcripts client.
func (sc *ServerContext) Transcripts() *transcripts.Client {
	return sc.transcriptsClient
}

// Mail returns the mail client.
func (sc *ServerContext) Mail() *mail.Client {
	return sc.mailClient
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
