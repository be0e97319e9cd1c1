package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// LogWriter implements secondary.LogWriter with SQLite.
type LogWriter struct {
	db *sql.DB
}

// NewLogWriter creates a new SQLite activity log writer.
func NewLogWriter(db *sql.DB) *LogWriter {
	return &LogWriter{db: db}
}

// LogAction logs a mutation against an entity.
func (w *LogWriter) LogAction(ctx context.Context, action, entityType string, entityID int, detail string) error {
	_, err := w.db.ExecContext(ctx, `
		INSERT INTO activity_log (action, entity_type, entity_id, detail)
		VALUES (?, ?, ?, ?)`,
		action, entityType, entityID, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}

// LogUnexpected logs a handled-but-anomalous condition.
func (w *LogWriter) LogUnexpected(ctx context.Context, event, detail string) error {
	_, err := w.db.ExecContext(ctx, `
		INSERT INTO activity_log (action, entity_type, entity_id, detail)
		VALUES (?, 'unexpected', NULL, ?)`,
		event, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}
