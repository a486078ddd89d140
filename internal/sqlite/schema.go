// Package sqlite implements the durable local store for the cafeteria
// storefront. Documents are JSON values addressed by key; applied status
// transitions are additionally recorded in an append-only audit table.
package sqlite

// Schema DDL. The documents table is the key-value store proper; status_log
// is the transition audit trail.
const (
	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createStatusLog = `CREATE TABLE IF NOT EXISTS status_log (
    log_id TEXT PRIMARY KEY,
    order_id TEXT NOT NULL,
    status TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createStatusLogOrderIndex = `CREATE INDEX IF NOT EXISTS idx_status_log_order
    ON status_log (order_id, timestamp);`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createDocuments,
	createStatusLog,
	createStatusLogOrderIndex,
}
