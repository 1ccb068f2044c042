package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"afisha_backend/internal/logger"
	"afisha_backend/internal/models"
	"afisha_backend/internal/repositories"
	"afisha_backend/pkg/apperrors"
)

type EstimationService interface {
	Rate(ctx context.Context, userID, eventID string, mark int) error
	Withdraw(ctx context.Context, userID, eventID string) error
	Rating(ctx context.Context, eventID string) (float64, error)
}

type estimationService struct {
	estimations repositories.EstimationRepository
	requests    repositories.RequestRepository
	events      repositories.EventRepository
}

func NewEstimationService(
	estimations repositories.EstimationRepository,
	requests repositories.RequestRepository,
	events repositories.EventRepository,
) EstimationService {
	return &estimationService{estimations: estimations, requests: requests, events: events}
}

// Rate stores a mark from 0 to 10. Only confirmed participants can rate an
// event, and the initiator never can.
func (s *estimationService) Rate(ctx context.Context, userID, eventID string, mark int) error {
	if mark < 0 || mark > 10 {
		return apperrors.ErrInvalidOperation("mark must be between 0 and 10")
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return apperrors.InternalError(err)
	}
	if event.InitiatorID == userID {
		return apperrors.ErrConflict("the initiator cannot rate the own event")
	}

	confirmed, err := s.requests.IsConfirmedParticipant(ctx, userID, eventID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !confirmed {
		return apperrors.ErrConflict("only confirmed participants can rate the event")
	}

	estimation := &models.Estimation{UserID: userID, EventID: eventID, Mark: int16(mark)}
	if err := s.estimations.Create(ctx, estimation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyExists(err, "the event is already rated by this user")
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "event rated", "event_id", eventID, "user_id", userID, "mark", mark)
	return nil
}

func (s *estimationService) Withdraw(ctx context.Context, userID, eventID string) error {
	if err := s.estimations.Delete(ctx, userID, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err, "rating for event with id="+eventID+" was not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Rating returns the mean mark of the event, or 0 when nobody rated it yet.
func (s *estimationService) Rating(ctx context.Context, eventID string) (float64, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return 0, apperrors.InternalError(err)
	}
	rating, err := s.estimations.RatingFor(ctx, eventID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return rating, nil
}
