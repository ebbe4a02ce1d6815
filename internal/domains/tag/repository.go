package tag

import "context"

type Repository interface {
	// List returns every tag ordered by id
	List(ctx context.Context) ([]Tag, error)

	// FindByID returns ErrTagNotFound when absent
	FindByID(ctx context.Context, id int64) (*Tag, error)

	// Create returns a field error when name, color or slug is taken
	Create(ctx context.Context, t *Tag) error
}
