// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// from the application's configuration. The connection backs the sync history
// feature and is optional: callers treat a failed Connect as "history disabled".
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
