package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/collection"
	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/shared/utils"
)

// postgresRepository serves both list tables; Kind picks the table
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) collection.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Add(ctx context.Context, kind collection.Kind, userID, recipeID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (user_id, recipe_id) VALUES ($1, $2)`, kind.Table())

	if _, err := r.pool.Exec(ctx, query, userID, recipeID); err != nil {
		switch {
		case utils.IsUniqueViolation(err, kind.UniqueConstraint()):
			return kind.ErrAlreadyAdded()
		case utils.IsForeignKeyViolation(err):
			// recipe deleted between lookup and insert
			return recipe.ErrRecipeNotFound
		}
		return fmt.Errorf("insert into %s: %w", kind.Table(), err)
	}
	return nil
}

func (r *postgresRepository) Remove(ctx context.Context, kind collection.Kind, userID, recipeID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND recipe_id = $2`, kind.Table())

	tag, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", kind.Table(), err)
	}
	if tag.RowsAffected() == 0 {
		return kind.ErrNotListed()
	}
	return nil
}

func (r *postgresRepository) ShoppingList(ctx context.Context, userID int64) ([]collection.ShoppingItem, error) {
	query := `
		SELECT i.name, i.measurement_unit, SUM(ri.amount) AS total
		FROM shopping_cart sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = $1
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name, i.measurement_unit
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	defer rows.Close()

	items := make([]collection.ShoppingItem, 0)
	for rows.Next() {
		var item collection.ShoppingItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shopping list: %w", err)
	}

	return items, nil
}
