package service

import (
	"context"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/pkg/logger"
)

type tagService struct {
	repo tag.Repository
}

func NewTagService(repo tag.Repository) tag.Service {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context) ([]tag.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) Get(ctx context.Context, id int64) (*tag.Tag, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *tagService) Create(ctx context.Context, req tag.CreateTagRequest) (*tag.Tag, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &tag.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.Info("Tag created", map[string]interface{}{"tag_id": t.ID, "slug": t.Slug})
	return t, nil
}
