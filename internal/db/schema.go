package db

// SchemaSQL is the complete schema for fresh taskflow installs.
// This is the single source of truth for the local state database;
// tests build their fixtures from GetSchemaSQL() rather than hardcoding
// CREATE TABLE statements, so repository drift fails immediately with
// "no such column" instead of passing against a stale copy.
const SchemaSQL = `
-- Session (at most one row; the stored bearer token plus the account
-- it was issued to, serialized as JSON)
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	user_json TEXT NOT NULL,
	saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Task cache (last server-confirmed task subtree per task, replaced
-- wholesale after every successful sync)
CREATE TABLE IF NOT EXISTS task_cache (
	task_id INTEGER PRIMARY KEY,
	project_id INTEGER NOT NULL,
	task_json TEXT NOT NULL,
	synced_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Activity log (mutations issued by this client and conditions worth
-- flagging, such as a duplicate accept reported by the backend)
CREATE TABLE IF NOT EXISTS activity_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	action TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id INTEGER,
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates all tables if they do not exist.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	return nil
}

// GetSchemaSQL returns the schema for test fixtures.
func GetSchemaSQL() string {
	return SchemaSQL
}
