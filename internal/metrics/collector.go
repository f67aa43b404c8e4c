package metrics

import (
	"context"
	"database/sql"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collector samples process and connection pool statistics on a ticker.
type Collector struct {
	metrics   *Metrics
	logger    *zap.Logger
	sqlDB     *sql.DB
	startTime time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCollector(metrics *Metrics, logger *zap.Logger, db *gorm.DB) *Collector {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get sql.DB from gorm.DB", zap.Error(err))
		metrics.RecordDBConnectionError()
	}

	return &Collector{
		metrics:   metrics,
		logger:    logger,
		sqlDB:     sqlDB,
		startTime: time.Now(),
	}
}

func (c *Collector) Start(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-ctx.Done():
				return
			}
		}
	}()

	c.logger.Info("Metrics collector started", zap.Duration("interval", interval))
}

func (c *Collector) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	c.logger.Info("Metrics collector stopped")
}

func (c *Collector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	c.metrics.UpdateSystemMetrics(time.Since(c.startTime), &memStats)

	if c.sqlDB == nil {
		return
	}

	stats := c.sqlDB.Stats()
	c.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	c.metrics.DBConnectionsIdle.Set(float64(stats.Idle))

	c.logger.Debug("Database connection stats",
		zap.Int("openConnections", stats.OpenConnections),
		zap.Int("inUse", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int64("waitCount", stats.WaitCount),
		zap.Duration("waitDuration", stats.WaitDuration),
	)
}

// Ping checks database reachability and records the probe as a query.
func (c *Collector) Ping(ctx context.Context) error {
	if c.sqlDB == nil {
		c.metrics.RecordDBConnectionError()
		return sql.ErrConnDone
	}

	start := time.Now()
	err := c.sqlDB.PingContext(ctx)

	status := "success"
	if err != nil {
		status = "error"
		c.metrics.RecordDBConnectionError()
	}
	c.metrics.RecordDBQuery("ping", "health_check", status, time.Since(start))

	return err
}

func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startTime)
}
