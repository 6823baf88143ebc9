// Package database manages the shared relational connection pool.
//
// It wraps GORM with the Postgres (pgx) dialector by default and MySQL as an
// alternative, applying the configured pool limits (max open/idle connections,
// connection lifetime) and verifying the pool with a ping on startup.
//
// # Acquire / Release
//
// WithConn draws a dedicated connection from the pool, hands it to a callback
// and returns it to the pool on every exit path, so callers never leak a
// connection on error or panic.
//
// # Health
//
// Check runs SELECT 1 on a pooled connection and reports pool statistics. It
// never fails; the outcome is encoded in the returned Status.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.WithConn(ctx, db, func(conn *sql.Conn) error {
//	    _, err := conn.ExecContext(ctx, "SELECT 1")
//	    return err
//	})
package database
