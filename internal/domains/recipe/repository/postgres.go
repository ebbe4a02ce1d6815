package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/shared/utils"
	"foodgram-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) recipe.Repository {
	return &postgresRepository{pool: pool}
}

// rowColumns selects a recipe with its author and the viewer flags; viewer is a placeholder like $3
func rowColumns(viewer string) string {
	return fmt.Sprintf(`
		r.id, r.author_id, r.name, r.image, r.text, r.cooking_time, r.pub_date,
		u.id, u.email, u.username, u.first_name, u.last_name,
		EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = %[1]s AND s.author_id = r.author_id),
		EXISTS (SELECT 1 FROM favorites f WHERE f.user_id = %[1]s AND f.recipe_id = r.id),
		EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.user_id = %[1]s AND sc.recipe_id = r.id)
	`, viewer)
}

func scanRow(row pgx.Row) (*recipe.Row, error) {
	var r recipe.Row
	err := row.Scan(
		&r.ID, &r.AuthorID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.PubDate,
		&r.Author.ID, &r.Author.Email, &r.Author.Username, &r.Author.FirstName, &r.Author.LastName,
		&r.Author.IsSubscribed,
		&r.IsFavorited,
		&r.IsInShoppingCart,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// membership filters on a (user, recipe) list table
func membership(table string, in bool) string {
	clause := fmt.Sprintf("EXISTS (SELECT 1 FROM %s m WHERE m.recipe_id = r.id AND m.user_id = ?)", table)
	if !in {
		return "NOT " + clause
	}
	return clause
}

// ========================================
// READS
// ========================================

func (r *postgresRepository) List(ctx context.Context, f recipe.ListFilter, viewerID int64, limit, offset int) ([]recipe.Row, int64, error) {
	var w utils.WhereBuilder
	if f.AuthorID != nil {
		w.Add("r.author_id = ?", *f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		w.Add(`EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(?::text[])
		)`, pq.Array(f.TagSlugs))
	}
	if f.IsFavorited != nil {
		w.Add(membership("favorites", *f.IsFavorited), viewerID)
	}
	if f.IsInShoppingCart != nil {
		w.Add(membership("shopping_cart", *f.IsInShoppingCart), viewerID)
	}
	where := w.SQL()

	// STEP 1: COUNT with the filter args only
	countArgs := append([]any(nil), w.Args()...)
	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM recipes r"+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}
	if total == 0 {
		return []recipe.Row{}, 0, nil
	}

	// STEP 2: PAGE
	viewer := w.Arg(viewerID)
	limitArg := w.Arg(limit)
	offsetArg := w.Arg(offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		%s
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT %s OFFSET %s
	`, rowColumns(viewer), where, limitArg, offsetArg)

	rows, err := r.pool.Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	result := make([]recipe.Row, 0, limit)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan recipe: %w", err)
		}
		result = append(result, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate recipes: %w", err)
	}

	return result, total, nil
}

func (r *postgresRepository) FindRow(ctx context.Context, id, viewerID int64) (*recipe.Row, error) {
	query := `SELECT ` + rowColumns("$1") + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $2`

	row, err := scanRow(r.pool.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe row: %w", err)
	}
	return row, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	err := r.pool.QueryRow(ctx, `
		SELECT id, author_id, name, image, text, cooking_time, pub_date
		FROM recipes
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.AuthorID, &rec.Name, &rec.Image, &rec.Text, &rec.CookingTime, &rec.PubDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe by id: %w", err)
	}
	return &rec, nil
}

func (r *postgresRepository) TagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]tag.Tag, error) {
	result := make(map[int64][]tag.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1::bigint[])
		ORDER BY t.id
	`, pq.Array(recipeIDs))
	if err != nil {
		return nil, fmt.Errorf("load recipe tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var t tag.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan recipe tag: %w", err)
		}
		result[recipeID] = append(result[recipeID], t)
	}
	return result, rows.Err()
}

func (r *postgresRepository) IngredientsFor(ctx context.Context, recipeIDs []int64) (map[int64][]recipe.IngredientAmount, error) {
	result := make(map[int64][]recipe.IngredientAmount, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1::bigint[])
		ORDER BY ri.id
	`, pq.Array(recipeIDs))
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var ia recipe.IngredientAmount
		if err := rows.Scan(&recipeID, &ia.ID, &ia.Name, &ia.MeasurementUnit, &ia.Amount); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		result[recipeID] = append(result[recipeID], ia)
	}
	return result, rows.Err()
}

func (r *postgresRepository) MissingTags(ctx context.Context, ids []int64) ([]int64, error) {
	return r.missingIDs(ctx, "tags", ids)
}

func (r *postgresRepository) MissingIngredients(ctx context.Context, ids []int64) ([]int64, error) {
	return r.missingIDs(ctx, "ingredients", ids)
}

func (r *postgresRepository) missingIDs(ctx context.Context, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT x.id
		FROM unnest($1::bigint[]) WITH ORDINALITY AS x(id, ord)
		LEFT JOIN %s t ON t.id = x.id
		WHERE t.id IS NULL
		ORDER BY x.ord
	`, table)

	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", table, err)
	}
	defer rows.Close()

	var missing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", table, err)
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}

func (r *postgresRepository) ExistsByNameAndText(ctx context.Context, name, text string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM recipes WHERE name = $1 AND text = $2)`,
		name, text,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate recipe: %w", err)
	}
	return exists, nil
}

// ========================================
// WRITES (one transaction per aggregate write)
// ========================================

// insertedRecipe carries the generated columns out of the transaction
type insertedRecipe struct {
	id      int64
	pubDate time.Time
}

// CreateAggregate inserts the recipe with its tags and ingredients in one transaction.
// rec.ID and rec.PubDate are set only once the transaction has committed.
func (r *postgresRepository) CreateAggregate(ctx context.Context, rec *recipe.Recipe, tagIDs []int64, ingredients []recipe.IngredientInput) error {
	inserted, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (insertedRecipe, error) {
		var out insertedRecipe
		err := tx.QueryRow(ctx, `
			INSERT INTO recipes (author_id, name, image, text, cooking_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, pub_date
		`, rec.AuthorID, rec.Name, rec.Image, rec.Text, rec.CookingTime).Scan(&out.id, &out.pubDate)
		if err != nil {
			return out, mapWriteError(err)
		}

		if err := insertTags(ctx, tx, out.id, tagIDs); err != nil {
			return out, err
		}
		return out, insertIngredients(ctx, tx, out.id, ingredients)
	})
	if err != nil {
		return err
	}

	rec.ID = inserted.id
	rec.PubDate = inserted.pubDate
	return nil
}

func (r *postgresRepository) UpdateAggregate(ctx context.Context, rec *recipe.Recipe, tagIDs []int64, ingredients []recipe.IngredientInput) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE recipes
			SET name = $2, image = $3, text = $4, cooking_time = $5
			WHERE id = $1
		`, rec.ID, rec.Name, rec.Image, rec.Text, rec.CookingTime)
		if err != nil {
			return mapWriteError(err)
		}
		if cmd.RowsAffected() == 0 {
			return recipe.ErrRecipeNotFound
		}

		if tagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, rec.ID); err != nil {
				return fmt.Errorf("clear recipe tags: %w", err)
			}
			if err := insertTags(ctx, tx, rec.ID, tagIDs); err != nil {
				return err
			}
		}

		// Full replacement, concurrent updates are last-write-wins
		if ingredients != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
				return fmt.Errorf("clear recipe ingredients: %w", err)
			}
			if err := insertIngredients(ctx, tx, rec.ID, ingredients); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertTags(ctx context.Context, tx pgx.Tx, recipeID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, unnest($2::bigint[])
	`, recipeID, pq.Array(tagIDs))
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func insertIngredients(ctx context.Context, tx pgx.Tx, recipeID int64, items []recipe.IngredientInput) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, len(items))
	amounts := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
		amounts[i] = int64(item.Amount)
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		SELECT $1, x.ingredient_id, x.amount
		FROM unnest($2::bigint[], $3::int[]) AS x(ingredient_id, amount)
	`, recipeID, pq.Array(ids), pq.Array(amounts))
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// mapWriteError turns constraint violations into domain errors
func mapWriteError(err error) error {
	switch {
	case utils.IsUniqueViolation(err, "unique_for_author"):
		return recipe.ErrNameAlreadyUsed
	case utils.IsForeignKeyViolation(err, "recipe_ingredients_ingredient_id_fkey"):
		return recipe.ErrIngredientNotFound
	case utils.IsForeignKeyViolation(err, "recipe_tags_tag_id_fkey"):
		return recipe.ErrTagsNotFound
	case utils.IsUniqueViolation(err, "unique_recipe_ingredient"):
		return recipe.ErrDuplicateIngredient
	}
	return fmt.Errorf("write recipe: %w", err)
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (string, error) {
	var image string
	err := r.pool.QueryRow(ctx, `DELETE FROM recipes WHERE id = $1 RETURNING image`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", recipe.ErrRecipeNotFound
		}
		return "", fmt.Errorf("delete recipe: %w", err)
	}
	return image, nil
}

func (r *postgresRepository) ReferencedImages(ctx context.Context, keys []string) (map[string]bool, error) {
	result := make(map[string]bool, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT DISTINCT image FROM recipes WHERE image = ANY($1::text[])`, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("load referenced images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan image key: %w", err)
		}
		result[key] = true
	}
	return result, rows.Err()
}
