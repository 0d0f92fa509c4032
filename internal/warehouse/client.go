// Package warehouse provides read-only access to the company sales warehouse
// running on SQL Server. The warehouse is optional: when disabled or not fully
// configured, NewClient returns a nil client and every method degrades to a
// "not initialized" error, so callers can treat campaign actuals as simply
// unavailable.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/config"
)

const (
	defaultMaxRetries         = 3
	defaultInitialBackoff     = 1 * time.Second
	defaultMaxBackoff         = 10 * time.Second
	defaultBackoffFactor      = 2.0
	defaultHealthCheckTimeout = 5 * time.Second
)

// Client wraps a SQL Server connection pool against the sales warehouse.
type Client struct {
	db           *sql.DB
	config       *config.WarehouseConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// HealthStatus describes the warehouse connection for the health endpoint.
type HealthStatus struct {
	Status     string        `json:"status"`
	Latency    time.Duration `json:"latency_ms"`
	Error      string        `json:"error,omitempty"`
	MaxOpen    int           `json:"max_open_connections"`
	Open       int           `json:"open_connections"`
	InUse      int           `json:"in_use"`
	Idle       int           `json:"idle"`
	WaitCount  int64         `json:"wait_count"`
	WaitTimeMs int64         `json:"wait_time_ms"`
}

// CampaignActuals holds the aggregated sales figures attributed to one
// marketing campaign in the warehouse.
type CampaignActuals struct {
	CampaignCode string
	SalesAmount  float64
	LeadCount    int
	SpendAmount  float64
}

// NewClient connects to the sales warehouse with bounded retries.
// Returns (nil, nil) when the warehouse is disabled or credentials are
// missing, which is a valid deployment mode.
func NewClient(cfg *config.WarehouseConfig, logger *zap.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info("Sales warehouse disabled, campaign actuals unavailable")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("Sales warehouse enabled but credentials are incomplete, continuing without it")
		return nil, nil
	}

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouse configuration: %w", err)
	}

	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("Connecting to sales warehouse",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)

		db, err = sql.Open("sqlserver", connStr)
		if err != nil {
			logger.Warn("Failed to open warehouse connection",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

		ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
		err = db.PingContext(ctx)
		cancel()

		if err != nil {
			logger.Warn("Sales warehouse ping failed",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			_ = db.Close()
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		logger.Info("Sales warehouse connection established",
			zap.Int("attempts_taken", attempt),
		)

		return &Client{
			db:           db,
			config:       cfg,
			logger:       logger,
			queryTimeout: cfg.QueryTimeoutDuration(),
		}, nil
	}

	return nil, fmt.Errorf("failed to connect to sales warehouse after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString constructs a SQL Server connection string.
// URL format expected: host:port/database or host:port.
func buildConnectionString(cfg *config.WarehouseConfig) (string, error) {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433"
	if len(hostParts) > 1 {
		port = hostParts[1]
	}
	if host == "" {
		return "", fmt.Errorf("warehouse URL %q has no host", cfg.URL)
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// Close gracefully closes the warehouse connection during shutdown.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	c.logger.Info("Closing sales warehouse connection")

	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close sales warehouse connection", zap.Error(err))
		return fmt.Errorf("failed to close sales warehouse connection: %w", err)
	}

	return nil
}

// HealthCheck reports connection health and pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{Status: "disabled"}
	}

	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency:    latency,
		MaxOpen:    stats.MaxOpenConnections,
		Open:       stats.OpenConnections,
		InUse:      stats.InUse,
		Idle:       stats.Idle,
		WaitCount:  stats.WaitCount,
		WaitTimeMs: stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		c.logger.Warn("Sales warehouse health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// GetCampaignActuals fetches the aggregated actual sales, lead count and ad
// spend recorded in the warehouse for one campaign code. Returns (nil, nil)
// when the warehouse has no rows for the code.
func (c *Client) GetCampaignActuals(ctx context.Context, campaignCode string) (*CampaignActuals, error) {
	if c == nil || c.db == nil {
		return nil, fmt.Errorf("sales warehouse client not initialized")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	const query = `
		SELECT
			campaign_code,
			COALESCE(SUM(sales_amount), 0)  AS sales_amount,
			COALESCE(SUM(lead_count), 0)    AS lead_count,
			COALESCE(SUM(spend_amount), 0)  AS spend_amount
		FROM dbo.campaign_sales_daily
		WHERE campaign_code = @p1
		GROUP BY campaign_code`

	start := time.Now()

	row := c.db.QueryRowContext(ctx, query, campaignCode)

	actuals := &CampaignActuals{}
	err := row.Scan(&actuals.CampaignCode, &actuals.SalesAmount, &actuals.LeadCount, &actuals.SpendAmount)
	if err == sql.ErrNoRows {
		c.logger.Debug("No warehouse rows for campaign",
			zap.String("campaign_code", campaignCode),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Campaign actuals query failed",
			zap.Error(err),
			zap.String("campaign_code", campaignCode),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("campaign actuals query failed: %w", err)
	}

	c.logger.Debug("Campaign actuals query completed",
		zap.String("campaign_code", campaignCode),
		zap.Duration("duration", time.Since(start)),
	)

	return actuals, nil
}
