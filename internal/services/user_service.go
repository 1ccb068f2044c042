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

type UserService interface {
	Register(ctx context.Context, req dto.NewUserRequest) (*dto.UserResponse, error)
	GetUsers(ctx context.Context, ids []string, from, size int) ([]dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, req dto.NewUserRequest) (*dto.UserResponse, error) {
	user := &models.User{Email: req.Email, Name: req.Name}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyExists(err, "user with email "+req.Email+" already exists")
		}
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetUsers(ctx context.Context, ids []string, from, size int) ([]dto.UserResponse, error) {
	users, err := s.users.FindAll(ctx, ids, from, size)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err, "user with id="+id+" was not found")
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "user deleted", "user_id", id)
	return nil
}
