package database

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Status is the outcome of a pool health check.
type Status struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"responseTime,omitempty"`
	Error        string        `json:"error,omitempty"`
	OpenConns    int           `json:"openConnections"`
	InUse        int           `json:"inUse"`
	Idle         int           `json:"idle"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Check runs a trivial query on a pooled connection. It never returns an
// error; failures are reported in the Status.
func Check(ctx context.Context, db *gorm.DB) Status {
	start := time.Now()

	err := WithConn(ctx, db, func(conn *sql.Conn) error {
		var one int
		return conn.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	})

	status := Status{Timestamp: time.Now()}
	if db != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			stats := sqlDB.Stats()
			status.OpenConns = stats.OpenConnections
			status.InUse = stats.InUse
			status.Idle = stats.Idle
		}
	}

	if err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	status.Status = "healthy"
	status.ResponseTime = status.Timestamp.Sub(start)
	return status
}
