package health

import (
	"context"
	"time"

	"filevault/core/database"
	"filevault/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report combines the dependency checks.
type Report struct {
	Status    storage.HealthState  `json:"status"`
	Storage   storage.HealthStatus `json:"storage"`
	Database  *database.Status     `json:"database,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	return r.Status == storage.Healthy
}

// Service runs health checks.
type Service struct {
	bucket *storage.Bucket
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a health service. db may be nil when no database is configured.
func NewService(bucket *storage.Bucket, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{bucket: bucket, db: db, logger: logger}
}

// Check probes storage and, when configured, the database.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:  storage.Healthy,
		Storage: s.bucket.HealthCheck(ctx),
	}
	if report.Storage.Status != storage.Healthy {
		report.Status = storage.Unhealthy
	}

	if s.db != nil {
		dbStatus := database.Check(ctx, s.db)
		report.Database = &dbStatus
		if dbStatus.Status != string(storage.Healthy) {
			report.Status = storage.Unhealthy
		}
	}

	report.Timestamp = time.Now()
	return report
}
