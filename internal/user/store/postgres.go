package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"feria/internal/user"
	"feria/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists user records in the users table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Insert(ctx context.Context, u user.User) error {
	query := `
		INSERT INTO users (subject_id, username, rut, first_name, last_name, phone, is_seller, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := p.db.ExecContext(ctx, query,
		u.SubjectID, u.Username, u.RUT, u.FirstName, u.LastName, u.Phone, u.IsSeller, u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *Postgres) FindBySubject(ctx context.Context, subjectID string) (user.User, error) {
	query := `
		SELECT subject_id, username, rut, first_name, last_name, phone, is_seller, created_at
		FROM users
		WHERE subject_id = $1
	`
	var u user.User
	err := p.db.QueryRowContext(ctx, query, subjectID).Scan(
		&u.SubjectID, &u.Username, &u.RUT, &u.FirstName, &u.LastName, &u.Phone, &u.IsSeller, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, sentinel.ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user by subject: %w", err)
	}
	return u, nil
}

func (p *Postgres) SetSeller(ctx context.Context, subjectID string, isSeller bool) error {
	res, err := p.db.ExecContext(ctx, `UPDATE users SET is_seller = $2 WHERE subject_id = $1`, subjectID, isSeller)
	if err != nil {
		return fmt.Errorf("set seller flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set seller flag: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
