// Package postgres persists audit events into the audit_outbox table when no
// broker is configured. Rows carry the same JSON payload the Kafka sink
// publishes, so a later drain job can forward them unchanged.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"feria/internal/audit"
)

// Store implements audit.Sink on PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append writes one audit event to the outbox.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO audit_outbox (id, subject_id, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		event.ID,
		event.SubjectID,
		string(event.Action),
		payload,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit outbox entry: %w", err)
	}
	return nil
}
