package tag

import "context"

type Service interface {
	List(ctx context.Context) ([]Tag, error)
	Get(ctx context.Context, id int64) (*Tag, error)
	Create(ctx context.Context, req CreateTagRequest) (*Tag, error)
}
