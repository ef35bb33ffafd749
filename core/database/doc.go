// Package database handles database connections.
//
// It wraps GORM and configures MySQL (default), PostgreSQL or SQLite connections from the
// application's configuration. SQLite is used for in-memory databases in tests.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
