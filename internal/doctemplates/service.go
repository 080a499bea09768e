package doctemplates

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	id, err := s.repo.Create(ctx, Template{
		Kind:      req.Kind,
		Name:      req.Name,
		Body:      req.Body,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Template, error) {
	return s.repo.Get(ctx, id)
}

// Body returns just the text body of a template; used by the offers service
// when applying a template at offer creation.
func (s *Service) Body(ctx context.Context, id int64) (string, error) {
	tpl, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return tpl.Body, nil
}

func (s *Service) List(ctx context.Context, kind *TemplateKind) ([]Template, error) {
	return s.repo.List(ctx, kind)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateTemplateRequest) (*Template, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update template: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
