package kvstore

// Error messages
const (
	ErrMsgEncodeValue = "failed to encode value"
	ErrMsgDecodeValue = "failed to decode value"
	ErrMsgOpenDB      = "kvstore: open db"
	ErrMsgPragma      = "kvstore: pragma"
	ErrMsgMigrate     = "kvstore: create table"
)

// SQL statements
const (
	pragmaWAL = `PRAGMA journal_mode=WAL`

	createTableSQL = `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`

	getSQL    = `SELECT value FROM kv WHERE key = ?`
	upsertSQL = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteSQL = `DELETE FROM kv WHERE key = ?`
)
