// Package storage keeps a local archive of placed orders, mirroring
// what was sent to the order backend, for reporting and Excel export.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"framex/internal/checkout"
	"framex/pkg/redis"
)

const statsCacheKey = "framex:order_stats"

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type PostgresArchive struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Order is one archived order row.
type Order struct {
	ID              int64     `db:"id"`
	OrderRef        string    `db:"order_ref"`
	CustomerName    string    `db:"customer_name"`
	Phone           string    `db:"phone"`
	City            string    `db:"city"`
	Address         string    `db:"address"`
	Lines           int       `db:"lines"`
	Quantity        int       `db:"quantity"`
	Subtotal        float64   `db:"subtotal"`
	DeliveryCharges float64   `db:"delivery_charges"`
	Total           float64   `db:"total"`
	CostTotal       float64   `db:"cost_total"`
	Profit          float64   `db:"profit"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
}

func NewPostgresArchive(ctx context.Context, cfg Config, redisClient *redis.Client, logger *zap.Logger) (*PostgresArchive, error) {
	const operation = "storage.NewPostgresArchive"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresArchive{db: db, redis: redisClient, logger: logger}, nil
}

// ArchiveOrder records an order that the backend accepted. Implements
// checkout.Archiver.
func (s *PostgresArchive) ArchiveOrder(ctx context.Context, orderRef string, req checkout.OrderRequest) error {
	const query = `
        INSERT INTO orders (
            order_ref, customer_name, phone, city, address,
            lines, quantity, subtotal, delivery_charges, total,
            cost_total, profit, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `

	var qty int
	var costTotal, profit float64
	for _, it := range req.Items {
		qty += it.Quantity
		costTotal += it.CostPrice * float64(it.Quantity)
		profit += it.Profit * float64(it.Quantity)
	}

	_, err := s.db.ExecContext(ctx, query,
		orderRef,
		req.Customer.Name,
		req.Customer.Phone,
		req.Customer.City,
		req.Customer.Address,
		len(req.Items),
		qty,
		req.Total-req.DeliveryCharges,
		req.DeliveryCharges,
		req.Total,
		costTotal,
		profit,
		"placed",
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to archive order: %w", err)
	}

	// Archived totals changed, drop the cached statistics.
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsCacheKey)
	}
	return nil
}

// GetOrderByRef looks up one archived order by its backend reference.
func (s *PostgresArchive) GetOrderByRef(ctx context.Context, orderRef string) (*Order, error) {
	const query = `SELECT * FROM orders WHERE order_ref = $1`
	var order Order
	err := s.db.GetContext(ctx, &order, query, orderRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// ListOrders returns archived orders, newest first.
func (s *PostgresArchive) ListOrders(ctx context.Context) ([]Order, error) {
	const query = `SELECT * FROM orders ORDER BY created_at DESC`
	var orders []Order
	if err := s.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

type Statistics struct {
	TotalOrders  int     `db:"total_orders"`
	TotalRevenue float64 `db:"total_revenue"`
	TotalProfit  float64 `db:"total_profit"`
	TodayOrders  int     `db:"-"`
	TodayRevenue float64 `db:"-"`
}

// Stats aggregates the archive, caching the result in Redis for an
// hour.
func (s *PostgresArchive) Stats(ctx context.Context) (*Statistics, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey); err == nil {
			var stats Statistics
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	var stats Statistics
	err := s.db.GetContext(ctx, &stats, `
        SELECT
            COUNT(*) as total_orders,
            COALESCE(SUM(total), 0) as total_revenue,
            COALESCE(SUM(profit), 0) as total_profit
        FROM orders
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	type countRevenue struct {
		Count   int     `db:"count"`
		Revenue float64 `db:"revenue"`
	}
	var today countRevenue
	err = s.db.GetContext(ctx, &today, `
        SELECT
            COUNT(*) as count,
            COALESCE(SUM(total), 0) as revenue
        FROM orders
        WHERE created_at >= CURRENT_DATE
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate today's orders: %w", err)
	}
	stats.TodayOrders = today.Count
	stats.TodayRevenue = today.Revenue

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, data, time.Hour)
		}
	}
	return &stats, nil
}

// ExportOrdersToExcel writes the full archive to reports/<filename>.xlsx
// and returns the written path.
func (s *PostgresArchive) ExportOrdersToExcel(ctx context.Context, filename string) (string, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ID", "Order Ref", "Customer", "Phone", "City", "Address",
		"Lines", "Quantity", "Subtotal", "Delivery", "Total",
		"Cost", "Profit", "Status", "Created At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, order := range orders {
		data := []interface{}{
			order.ID,
			order.OrderRef,
			order.CustomerName,
			order.Phone,
			order.City,
			order.Address,
			order.Lines,
			order.Quantity,
			order.Subtotal,
			order.DeliveryCharges,
			order.Total,
			order.CostTotal,
			order.Profit,
			order.Status,
			order.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, style)
	f.SetActiveSheet(index)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join("reports", filename+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func (s *PostgresArchive) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
