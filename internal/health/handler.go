// Package health exposes a liveness endpoint covering the backing services.
package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether one backing service is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts pgxpool.Pool to Checker.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a PostgreSQL health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

type namedChecker struct {
	name    string
	checker Checker
}

// Handler aggregates health checks over the registered services.
type Handler struct {
	checkers []namedChecker
}

// NewHandler creates an empty health handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Add registers a named service check.
func (h *Handler) Add(name string, checker Checker) {
	h.checkers = append(h.checkers, namedChecker{name: name, checker: checker})
}

// Response is the health check response.
type Response struct {
	Body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services,omitempty"`
	}
}

// Check pings every registered service. Any failure degrades the overall
// status but never errors the endpoint itself.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if len(h.checkers) > 0 {
		resp.Body.Services = make(map[string]string, len(h.checkers))
	}

	for _, nc := range h.checkers {
		if err := nc.checker.Ping(ctx); err != nil {
			resp.Body.Services[nc.name] = "unhealthy"
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Services[nc.name] = "healthy"
		}
	}

	return resp, nil
}

// RegisterRoutes registers the health endpoint.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
