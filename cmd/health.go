package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"filevault/core/database"
	"filevault/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check storage and database connectivity",
	Long:  `Probes the configured bucket and, when configured, the database pool. Exits non-zero when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		report := map[string]any{}
		healthy := true

		st := rt.bucket.HealthCheck(ctx)
		report["storage"] = st
		if st.Status != storage.Healthy {
			healthy = false
		}

		if rt.cfg.Database.URL != "" || rt.cfg.Database.Host != "" {
			db, err := database.Connect(rt.cfg.Database)
			if err != nil {
				rt.logger.Warn("Database connection failed", zap.Error(err))
				report["database"] = database.Status{Status: "unhealthy", Error: err.Error(), Timestamp: time.Now()}
				healthy = false
			} else {
				dbStatus := database.Check(ctx, db)
				report["database"] = dbStatus
				if dbStatus.Status != "healthy" {
					healthy = false
				}
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}

		if !healthy {
			return fmt.Errorf("health check failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}
