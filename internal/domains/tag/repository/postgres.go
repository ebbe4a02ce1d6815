package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/shared/utils"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/logger"
)

const (
	cacheKeyAll    = "tags:all"
	cacheKeyPrefix = "tags:"
)

// postgresRepository implements tag.Repository with a cache-aside layer
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	ttl   time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) tag.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
		ttl:   ttl,
	}
}

func (r *postgresRepository) List(ctx context.Context) ([]tag.Tag, error) {
	// STEP 1: CHECK CACHE FIRST
	var tags []tag.Tag
	if found, err := r.cache.Get(ctx, cacheKeyAll, &tags); err == nil && found {
		return tags, nil
	}

	// STEP 2: CACHE MISS - QUERY DATABASE
	rows, err := r.pool.Query(ctx, `SELECT id, name, color, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags = make([]tag.Tag, 0)
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	// STEP 3: SET CACHE (a cache outage must not fail the request)
	if err := r.cache.Set(ctx, cacheKeyAll, tags, r.ttl); err != nil {
		logger.Warn("Failed to cache tags", map[string]interface{}{"error": err.Error()})
	}

	return tags, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*tag.Tag, error) {
	cacheKey := fmt.Sprintf("%s%d", cacheKeyPrefix, id)

	var t tag.Tag
	if found, err := r.cache.Get(ctx, cacheKey, &t); err == nil && found {
		return &t, nil
	}

	err := r.pool.QueryRow(ctx, `SELECT id, name, color, slug FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tag.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &t, r.ttl)
	return &t, nil
}

func (r *postgresRepository) Create(ctx context.Context, t *tag.Tag) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3) RETURNING id`,
		t.Name, t.Color, t.Slug,
	).Scan(&t.ID)
	if err != nil {
		switch {
		case utils.IsUniqueViolation(err, "tags_name_key"):
			return tag.ErrNameAlreadyExists
		case utils.IsUniqueViolation(err, "tags_color_key"):
			return tag.ErrColorAlreadyExists
		case utils.IsUniqueViolation(err, "tags_slug_key"):
			return tag.ErrSlugAlreadyExists
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	if err := r.cache.Delete(ctx, cacheKeyAll); err != nil {
		logger.Warn("Failed to invalidate tag cache", map[string]interface{}{"error": err.Error()})
	}
	return nil
}
