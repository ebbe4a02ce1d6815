package ingredient

import "context"

type Service interface {
	Search(ctx context.Context, name string) ([]Ingredient, error)
	Get(ctx context.Context, id int64) (*Ingredient, error)
}
