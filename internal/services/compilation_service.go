package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/logger"
	"afisha_backend/internal/models"
	"afisha_backend/internal/repositories"
	"afisha_backend/pkg/apperrors"
)

type CompilationService interface {
	Create(ctx context.Context, req dto.NewCompilationRequest) (*dto.CompilationResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateCompilationRequest) (*dto.CompilationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompilationResponse, error)
	GetAll(ctx context.Context, pinned *bool, from, size int) ([]dto.CompilationResponse, error)
	Delete(ctx context.Context, id string) error
}

type compilationService struct {
	compilations repositories.CompilationRepository
	events       repositories.EventRepository
	estimations  repositories.EstimationRepository
}

func NewCompilationService(
	compilations repositories.CompilationRepository,
	events repositories.EventRepository,
	estimations repositories.EstimationRepository,
) CompilationService {
	return &compilationService{compilations: compilations, events: events, estimations: estimations}
}

func (s *compilationService) Create(ctx context.Context, req dto.NewCompilationRequest) (*dto.CompilationResponse, error) {
	events, err := s.loadEvents(ctx, req.Events)
	if err != nil {
		return nil, err
	}

	compilation := &models.Compilation{Title: req.Title, Pinned: req.Pinned, Events: events}
	if err := s.compilations.Create(ctx, compilation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists(err, "compilation title "+req.Title+" is already taken")
		}
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "compilation created", "compilation_id", compilation.ID)

	return s.response(ctx, compilation)
}

func (s *compilationService) Update(ctx context.Context, id string, req dto.UpdateCompilationRequest) (*dto.CompilationResponse, error) {
	compilation, err := s.compilations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "compilation with id="+id+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		compilation.Title = *req.Title
	}
	if req.Pinned != nil {
		compilation.Pinned = *req.Pinned
	}
	if err := s.compilations.Update(ctx, compilation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists(err, "compilation title is already taken")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Events != nil {
		events, err := s.loadEvents(ctx, *req.Events)
		if err != nil {
			return nil, err
		}
		if err := s.compilations.ReplaceEvents(ctx, compilation, events); err != nil {
			return nil, apperrors.InternalError(err)
		}
		compilation.Events = events
	}

	return s.response(ctx, compilation)
}

func (s *compilationService) GetByID(ctx context.Context, id string) (*dto.CompilationResponse, error) {
	compilation, err := s.compilations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "compilation with id="+id+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.response(ctx, compilation)
}

func (s *compilationService) GetAll(ctx context.Context, pinned *bool, from, size int) ([]dto.CompilationResponse, error) {
	compilations, err := s.compilations.FindAll(ctx, pinned, from, size)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]dto.CompilationResponse, 0, len(compilations))
	for i := range compilations {
		resp, err := s.response(ctx, &compilations[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *compilationService) Delete(ctx context.Context, id string) error {
	if err := s.compilations.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err, "compilation with id="+id+" was not found")
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "compilation deleted", "compilation_id", id)
	return nil
}

func (s *compilationService) loadEvents(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	events, err := s.events.FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(events) != len(ids) {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound, "some events of the compilation were not found")
	}
	return events, nil
}

func (s *compilationService) response(ctx context.Context, compilation *models.Compilation) (*dto.CompilationResponse, error) {
	ids := make([]string, 0, len(compilation.Events))
	for i := range compilation.Events {
		ids = append(ids, compilation.Events[i].ID)
	}
	ratings, err := s.estimations.RatingsFor(ctx, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := toCompilationResponse(compilation, ratings)
	return &resp, nil
}
