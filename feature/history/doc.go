// Package history persists the outcome of sync batches.
//
// Every batch run by the project service is stored as a SyncRun row with its
// counters, and each diagnostic as a SyncLogItem row, through GORM on MySQL or
// SQLite. The feature is only enabled when the optional database connection
// succeeds.
//
// # HTTP Endpoints
//
//   - GET /history : Lists runs, newest first (supports ?kind=, ?limit=, ?offset=).
//   - GET /history/:id : Returns one run with its diagnostics.
package history
