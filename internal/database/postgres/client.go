package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"go.uber.org/zap"
)

// PostgreSQL error codes the store translates
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	invalidTextRepr     = "22P02"
)

var _ repository.Store = (*Client)(nil)

// Client implements repository.Store on top of a pgx connection pool
type Client struct {
	pool *pgxpool.Pool
}

// NewClient wraps an initialized pool
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Close closes the connection pool
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
		logger.Info("PostgreSQL connection pool closed")
	}
}

// Ping checks if the database connection is alive
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.pool.Ping(ctx)
	c.observe("ping", start, err)
	if err != nil {
		return apperrors.StorageError("ping", err)
	}
	return nil
}

// Stats returns connection pool statistics
func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

// observe records metrics and a debug log line for one database operation
func (c *Client) observe(operation string, start time.Time, err error) {
	duration := metrics.MeasureDuration(start)

	status := "success"
	if err != nil {
		status = "error"
		if errors.Is(err, pgx.ErrNoRows) {
			status = "not_found"
		}
	}

	recordMetrics(operation, status, duration)
	if status == "error" {
		logger.LogAPICall("postgres", operation, status, duration, zap.Error(err))
		return
	}
	logger.LogAPICall("postgres", operation, status, duration)
}

// translateError maps driver errors onto the storage error kinds
func translateError(operation, resource string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundError(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return apperrors.ConflictError(resource + " already exists")
		case foreignKeyViolation:
			return apperrors.InvalidInputError("user_id", "referenced user does not exist")
		case invalidTextRepr:
			return apperrors.InvalidInputError(resource, pgErr.Message)
		}
	}

	return apperrors.StorageError(operation, err)
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}
