// Package api is the typed client for the diagram-generation backend.
//
// Every operation is one HTTP round trip: JSON in, JSON out, no client-side
// retry, backoff or timeout. Deadlines and retries belong to the caller; the
// client's contract is to fail with an unambiguous, typed error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"pdc/internal/cachemanager"
	"pdc/internal/log"
)

const defaultArtifactTTL = 30 * time.Second

// Client talks to the diagram-generation backend.
type Client struct {
	baseURL     string
	env         Environment
	httpClient  *http.Client
	tracer      trace.Tracer
	artifacts   cachemanager.CacheManager[string, Artifact]
	artifactTTL time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the environment-derived base URL. Intended for tests
// against httptest servers.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithTracer attaches an OpenTelemetry tracer; every call becomes a span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// WithArtifactCache attaches a TTL cache consulted by GetArtifact and
// populated by ListArtifacts.
func WithArtifactCache(cache cachemanager.CacheManager[string, Artifact], ttl time.Duration) Option {
	return func(c *Client) {
		c.artifacts = cache
		if ttl > 0 {
			c.artifactTTL = ttl
		}
	}
}

// New builds a client for the given runtime environment. The environment
// decides the base URL: same-origin for the browser deployment, the loopback
// sidecar for the embedded desktop one.
func New(env Environment, opts ...Option) *Client {
	c := &Client{
		baseURL:     env.BaseURL(),
		env:         env,
		httpClient:  http.DefaultClient,
		tracer:      noop.NewTracerProvider().Tracer("pdc/api"),
		artifactTTL: defaultArtifactTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Environment reports the runtime environment the client was built for.
func (c *Client) Environment() Environment {
	return c.env
}

// GenerateDiagram synchronously generates one diagram; the backend answers
// within the lifetime of the HTTP call.
func (c *Client) GenerateDiagram(ctx context.Context, req DiagramRequest) (DiagramResponse, error) {
	return postJSON[DiagramResponse](ctx, c, "/api/diagram/generate", req)
}

// GenerateIntegration synchronously generates an integration plan.
func (c *Client) GenerateIntegration(ctx context.Context, req IntegrationRequest) (IntegrationResponse, error) {
	return postJSON[IntegrationResponse](ctx, c, "/api/integration/generate", req)
}

// SettlementMetrics computes settlement metrics for one month of rows.
// No LLM is involved.
func (c *Client) SettlementMetrics(ctx context.Context, req SettlementMetricsRequest) (SettlementMetricsResponse, error) {
	return postJSON[SettlementMetricsResponse](ctx, c, "/api/settlement/metrics", req)
}

// SubmitDiagramTask submits an async diagram generation and returns
// immediately with an opaque task handle.
func (c *Client) SubmitDiagramTask(ctx context.Context, req DiagramRequest) (TaskSubmitResponse, error) {
	return postJSON[TaskSubmitResponse](ctx, c, "/api/tasks/diagram", req)
}

// SubmitIntegrationTask submits an async integration generation.
func (c *Client) SubmitIntegrationTask(ctx context.Context, req IntegrationRequest) (TaskSubmitResponse, error) {
	return postJSON[TaskSubmitResponse](ctx, c, "/api/tasks/integration", req)
}

// TaskStatus polls an async task by id.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (TaskStatusResponse, error) {
	return getJSON[TaskStatusResponse](ctx, c, "/api/tasks/"+url.PathEscape(taskID))
}

// ListArtifacts returns up to limit persisted generation results, newest
// first. A non-positive limit uses the backend default of 50.
func (c *Client) ListArtifacts(ctx context.Context, limit int) ([]Artifact, error) {
	if limit <= 0 {
		limit = 50
	}
	artifacts, err := getJSON[[]Artifact](ctx, c, fmt.Sprintf("/api/artifacts/?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	if c.artifacts != nil {
		for _, a := range artifacts {
			c.artifacts.Set(ctx, a.ID, a, c.artifactTTL)
		}
	}
	return artifacts, nil
}

// GetArtifact fetches one artifact by id, consulting the attached cache
// first when one is configured.
func (c *Client) GetArtifact(ctx context.Context, artifactID string) (Artifact, error) {
	if c.artifacts != nil {
		if a, ok := c.artifacts.Get(ctx, artifactID); ok {
			return a, nil
		}
	}
	a, err := getJSON[Artifact](ctx, c, "/api/artifacts/"+url.PathEscape(artifactID))
	if err != nil {
		return Artifact{}, err
	}
	if c.artifacts != nil {
		c.artifacts.Set(ctx, a.ID, a, c.artifactTTL)
	}
	return a, nil
}

// LLMPing checks connectivity of the backend's configured LLM provider.
func (c *Client) LLMPing(ctx context.Context) (LLMPingResponse, error) {
	return getJSON[LLMPingResponse](ctx, c, "/api/llm/ping")
}

// LLMConfig reads the backend's active LLM provider configuration.
func (c *Client) LLMConfig(ctx context.Context) (LLMConfig, error) {
	return getJSON[LLMConfig](ctx, c, "/api/llm/config")
}

// SetLLMConfig switches the backend's LLM provider at runtime and returns
// the resulting configuration.
func (c *Client) SetLLMConfig(ctx context.Context, req SetLLMConfigRequest) (LLMConfig, error) {
	return postJSON[LLMConfig](ctx, c, "/api/llm/config", req)
}

// DBPing checks connectivity of the backend database.
func (c *Client) DBPing(ctx context.Context) (DBPingResponse, error) {
	return getJSON[DBPingResponse](ctx, c, "/api/db/ping")
}

func postJSON[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return roundTrip[T](ctx, c, http.MethodPost, path, body)
}

func getJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	return roundTrip[T](ctx, c, http.MethodGet, path, nil)
}

func roundTrip[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("pdc.environment", c.env.String()),
		))
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return out, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug(log.CatAPI, "backend call", "method", method, "path", path)

	res, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, networkError(err)
	}
	defer func() { _ = res.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, networkError(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		terr := statusError(res.StatusCode, raw)
		span.SetStatus(codes.Error, terr.Message)
		log.Warn(log.CatAPI, "backend call failed",
			"method", method, "path", path, "status", res.StatusCode, "message", terr.Message)
		return out, terr
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return out, fmt.Errorf("decode %s response: %w", path, err)
	}
	return out, nil
}
