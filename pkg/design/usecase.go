package design

import (
	"context"
	"strings"
)

// UseCase serves the design catalog. Nothing is persisted yet: listings
// return fixed sample data and creation echoes the submitted building.
type UseCase interface {
	ListBuildings(ctx context.Context) ([]Building, error)
	CreateBuilding(ctx context.Context, ownerEmail string, data map[string]any) (map[string]any, error)
	ListProjects(ctx context.Context) ([]Project, error)
}

type service struct{}

func NewService() UseCase { return &service{} }

func (s *service) ListBuildings(ctx context.Context) ([]Building, error) {
	out := make([]Building, len(sampleBuildings))
	copy(out, sampleBuildings)
	return out, nil
}

// CreateBuilding stamps the owner onto the payload under "user_id".
func (s *service) CreateBuilding(ctx context.Context, ownerEmail string, data map[string]any) (map[string]any, error) {
	if data == nil {
		return nil, ErrValidation("building payload must be a JSON object")
	}
	if strings.TrimSpace(ownerEmail) == "" {
		return nil, ErrValidation("owner is required")
	}
	out := make(map[string]any, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["user_id"] = ownerEmail
	return out, nil
}

func (s *service) ListProjects(ctx context.Context) ([]Project, error) {
	out := make([]Project, len(sampleProjects))
	copy(out, sampleProjects)
	return out, nil
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
