package usecase

import (
	"context"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

type BusinessAreaService struct {
	repo repository.BusinessAreaRepository
}

func NewBusinessAreaService(repo repository.BusinessAreaRepository) *BusinessAreaService {
	return &BusinessAreaService{repo: repo}
}

// ListForPrincipal returns the caller's resolved areas in order. Areas with
// no catalogue row are still returned, without a description.
func (s *BusinessAreaService) ListForPrincipal(ctx context.Context, p *entity.Principal) ([]model.BusinessArea, error) {
	if len(p.BusinessAreas) == 0 {
		return []model.BusinessArea{}, nil
	}

	known, err := s.repo.ListByNames(ctx, p.BusinessAreas)
	if err != nil {
		return nil, apperrors.Internal("failed to load business areas", err)
	}
	byName := make(map[string]model.BusinessArea, len(known))
	for _, a := range known {
		byName[a.Name] = a
	}

	out := make([]model.BusinessArea, 0, len(p.BusinessAreas))
	for _, name := range p.BusinessAreas {
		if a, ok := byName[name]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, model.BusinessArea{Name: name})
	}
	return out, nil
}
