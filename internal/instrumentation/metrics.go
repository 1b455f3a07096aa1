package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrTool    = "tool"
	attrStatus  = "status"
	attrResult  = "result"
	attrSurface = "surface"
)

// Metrics records the server's observability metrics. The zero value is a
// no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	authTotal         metric.Int64Counter
	tokenRefreshTotal metric.Int64Counter

	graphRequestsTotal   metric.Int64Counter
	graphRequestDuration metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments registered on
// the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.authTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of interactive OAuth authorization attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	m.graphRequestsTotal, err = meter.Int64Counter(
		"graph_requests_total",
		metric.WithDescription("Total number of Microsoft Graph requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph_requests_total counter: %w", err)
	}

	m.graphRequestDuration, err = meter.Float64Histogram(
		"graph_request_duration_seconds",
		metric.WithDescription("Microsoft Graph request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph_request_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records one MCP tool call. Status is "success" or
// "error".
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAuth records one interactive browser authorization attempt. Result
// is "success" or "failure".
func (m *Metrics) RecordAuth(ctx context.Context, result string) {
	if m.authTotal == nil {
		return
	}
	m.authTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordTokenRefresh records one refresh-grant attempt. Result is
// "success" or "failure".
func (m *Metrics) RecordTokenRefresh(ctx context.Context, result string) {
	if m.tokenRefreshTotal == nil {
		return
	}
	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordGraphRequest records one Graph API request. Surface is "stable" or
// "beta"; status is the HTTP status code, 0 for network errors.
func (m *Metrics) RecordGraphRequest(ctx context.Context, surface string, status int, duration time.Duration) {
	if m.graphRequestsTotal == nil || m.graphRequestDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSurface, surface),
		attribute.String(attrStatus, strconv.Itoa(status)),
	}

	m.graphRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.graphRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
