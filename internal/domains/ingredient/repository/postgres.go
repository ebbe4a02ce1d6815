package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/ingredient"
	"foodgram-backend/internal/shared/utils"
	"foodgram-backend/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	ttl   time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) ingredient.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
		ttl:   ttl,
	}
}

// searchCacheKey keys results by the lower-cased prefix
func searchCacheKey(prefix string) string {
	return "ingredients:search:" + strings.ToLower(prefix)
}

func (r *postgresRepository) Search(ctx context.Context, prefix string) ([]ingredient.Ingredient, error) {
	cacheKey := searchCacheKey(prefix)

	var items []ingredient.Ingredient
	if found, err := r.cache.Get(ctx, cacheKey, &items); err == nil && found {
		return items, nil
	}

	// lower(name) LIKE 'abc%' uses the text_pattern_ops index
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE lower(name) LIKE $1 ESCAPE '\'
		ORDER BY name, id
	`, utils.EscapeLike(strings.ToLower(prefix))+"%")
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	defer rows.Close()

	items = make([]ingredient.Ingredient, 0)
	for rows.Next() {
		var i ingredient.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, items, r.ttl)
	return items, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*ingredient.Ingredient, error) {
	cacheKey := fmt.Sprintf("ingredients:%d", id)

	var i ingredient.Ingredient
	if found, err := r.cache.Get(ctx, cacheKey, &i); err == nil && found {
		return &i, nil
	}

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ingredient.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("find ingredient by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &i, r.ttl)
	return &i, nil
}
