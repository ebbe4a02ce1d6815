package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/subscription"
	"foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/utils"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) subscription.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, userID, authorID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subscriptions (user_id, author_id) VALUES ($1, $2)`,
		userID, authorID,
	)
	if err != nil {
		// The constraints are the final word under concurrent requests
		switch {
		case utils.IsUniqueViolation(err, "unique_user_author"):
			return subscription.ErrAlreadySubscribed
		case utils.IsCheckViolation(err, "prevent_self_subscription"):
			return subscription.ErrSelfSubscription
		case utils.IsForeignKeyViolation(err):
			return subscription.ErrAuthorNotFound
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, authorID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2`,
		userID, authorID,
	)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

func (r *postgresRepository) ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]user.Profile, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	query := `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.date_joined
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = $1
		ORDER BY s.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribed authors: %w", err)
	}
	defer rows.Close()

	authors := make([]user.Profile, 0, limit)
	for rows.Next() {
		p := user.Profile{IsSubscribed: true}
		if err := rows.Scan(&p.ID, &p.Email, &p.Username, &p.FirstName, &p.LastName, &p.DateJoined); err != nil {
			return nil, 0, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) RecipesByAuthors(ctx context.Context, authorIDs []int64, limit *int) (map[int64][]recipe.Recipe, error) {
	// row_number ranks each author's recipes newest first; a NULL limit keeps them all
	query := `
		SELECT id, author_id, name, image, text, cooking_time, pub_date
		FROM (
			SELECT r.*, row_number() OVER (
				PARTITION BY r.author_id ORDER BY r.pub_date DESC, r.id DESC
			) AS rn
			FROM recipes r
			WHERE r.author_id = ANY($1::bigint[])
		) ranked
		WHERE $2::int IS NULL OR rn <= $2::int
		ORDER BY author_id, rn
	`
	rows, err := r.pool.Query(ctx, query, pq.Array(authorIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("load author recipes: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]recipe.Recipe, len(authorIDs))
	for rows.Next() {
		var rec recipe.Recipe
		if err := rows.Scan(&rec.ID, &rec.AuthorID, &rec.Name, &rec.Image, &rec.Text, &rec.CookingTime, &rec.PubDate); err != nil {
			return nil, fmt.Errorf("scan author recipe: %w", err)
		}
		out[rec.AuthorID] = append(out[rec.AuthorID], rec)
	}
	return out, rows.Err()
}

func (r *postgresRepository) CountRecipes(ctx context.Context, authorIDs []int64) (map[int64]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT author_id, COUNT(*)
		FROM recipes
		WHERE author_id = ANY($1::bigint[])
		GROUP BY author_id
	`, pq.Array(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int, len(authorIDs))
	for rows.Next() {
		var authorID int64
		var n int
		if err := rows.Scan(&authorID, &n); err != nil {
			return nil, fmt.Errorf("scan recipe count: %w", err)
		}
		counts[authorID] = n
	}
	return counts, rows.Err()
}
