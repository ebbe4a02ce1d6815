package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/utils"
)

// postgresRepository implements user.Repository
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

// profileColumns expects the viewer id as $1
const profileColumns = `
	u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.date_joined,
	EXISTS (
		SELECT 1 FROM subscriptions s
		WHERE s.user_id = $1 AND s.author_id = u.id
	) AS is_subscribed
`

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (email, username, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date_joined
	`

	err := r.pool.QueryRow(ctx, query,
		u.Email,
		u.Username,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
	).Scan(&u.ID, &u.DateJoined)
	if err != nil {
		// 23505 = unique_violation, the constraint tells which field clashed
		switch {
		case utils.IsUniqueViolation(err, "users_email_key", "unique_email_username"):
			return user.ErrEmailAlreadyExists
		case utils.IsUniqueViolation(err, "users_username_key"):
			return user.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, email, username, first_name, last_name, password_hash, date_joined
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) GetProfile(ctx context.Context, id, viewerID int64) (*user.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM users u WHERE u.id = $2`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, viewerID int64, limit, offset int) ([]user.Profile, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + profileColumns + ` FROM users u ORDER BY u.id LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, viewerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	profiles := make([]user.Profile, 0, limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return profiles, total, nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*user.Profile, error) {
	var p user.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Username,
		&p.FirstName,
		&p.LastName,
		&p.PasswordHash,
		&p.DateJoined,
		&p.IsSubscribed,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
