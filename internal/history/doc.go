// Package history persists an append-only ledger of completed conversions in
// SQLite.
//
// The ledger feeds the CLI history table and the stats endpoint. It is not
// job state: the pipeline only inserts rows after an artifact has been
// resolved, and nothing reads the database to decide pipeline behavior, so a
// deleted or lost file is harmless.
package history
