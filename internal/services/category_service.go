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

type CategoryService interface {
	Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id string, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	GetAll(ctx context.Context, from, size int) ([]dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categories repositories.CategoryRepository
}

func NewCategoryService(categories repositories.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{Name: req.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists(err, "category name "+req.Name+" is already taken")
		}
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "category created", "category_id", category.ID)
	return toCategoryResponse(*category), nil
}

func (s *categoryService) Update(ctx context.Context, id string, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "category with id="+id+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}

	category.Name = req.Name
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists(err, "category name "+req.Name+" is already taken")
		}
		return nil, apperrors.InternalError(err)
	}
	return toCategoryResponse(*category), nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "category with id="+id+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return toCategoryResponse(*category), nil
}

func (s *categoryService) GetAll(ctx context.Context, from, size int) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx, from, size)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *toCategoryResponse(categories[i]))
	}
	return responses, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	hasEvents, err := s.categories.HasEvents(ctx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if hasEvents {
		return apperrors.ErrConflict("the category is not empty")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err, "category with id="+id+" was not found")
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "category deleted", "category_id", id)
	return nil
}
