package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"atelier/internal/config"
	"atelier/internal/orders"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				_ = db.Close()
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

// NewPostgresStorageFromDB wraps an existing connection.
func NewPostgresStorageFromDB(db *sql.DB, logger *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:     sqlx.NewDb(db, "postgres"),
		logger: logger,
	}
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

const orderColumns = `id, name, phone, email, garment_type, description, deadline,
	estimate_garment, estimate_fabric, estimate_services, estimate_total,
	status, created_at`

func (s *PostgresStorage) SaveOrder(ctx context.Context, order orders.Order) error {
	const query = `
        INSERT INTO orders (` + orderColumns + `)
        VALUES (
            :id, :name, :phone, :email, :garment_type, :description, :deadline,
            :estimate_garment, :estimate_fabric, :estimate_services, :estimate_total,
            :status, :created_at
        )
    `

	if order.EstimateServices == nil {
		order.EstimateServices = []string{}
	}

	if _, err := s.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order orders.Order
	if err := s.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orders.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// ListOrders returns orders newest first.
func (s *PostgresStorage) ListOrders(ctx context.Context) ([]orders.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	var out []orders.Order
	if err := s.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return out, nil
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if !orders.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}

	const query = `UPDATE orders SET status = $1 WHERE id = $2`
	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n == 0 {
		return orders.ErrOrderNotFound
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", status))
	return nil
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
