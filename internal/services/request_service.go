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

type RequestService interface {
	Create(ctx context.Context, userID, eventID string) (*dto.RequestResponse, error)
	Cancel(ctx context.Context, userID, requestID string) (*dto.RequestResponse, error)
	GetOwn(ctx context.Context, userID string) ([]dto.RequestResponse, error)
	GetForEvent(ctx context.Context, userID, eventID string) ([]dto.RequestResponse, error)
	DecideForEvent(ctx context.Context, userID, eventID string, update dto.RequestStatusUpdate) (*dto.RequestStatusUpdateResult, error)
}

type requestService struct {
	requests repositories.RequestRepository
	events   repositories.EventRepository
	users    repositories.UserRepository
}

func NewRequestService(
	requests repositories.RequestRepository,
	events repositories.EventRepository,
	users repositories.UserRepository,
) RequestService {
	return &requestService{requests: requests, events: events, users: users}
}

// Create admits a user to an event. A full event refuses new requests
// regardless of moderation. The request is auto-confirmed when the event has
// no participant limit or skips moderation; otherwise it stays pending until
// the initiator decides.
func (s *requestService) Create(ctx context.Context, userID, eventID string) (*dto.RequestResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "user with id="+userID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if event.InitiatorID == userID {
		return nil, apperrors.ErrConflict("the initiator cannot request participation in the own event")
	}
	if event.State != models.EventStatePublished {
		return nil, apperrors.ErrConflict("cannot participate in an unpublished event")
	}
	if event.ParticipantLimit > 0 && event.ConfirmedRequests >= event.ParticipantLimit {
		return nil, apperrors.ErrCapacityExceeded
	}

	request := &models.Request{EventID: eventID, RequesterID: userID}
	autoConfirm := event.ParticipantLimit == 0 || !event.RequestModeration

	if autoConfirm {
		err = s.requests.CreateConfirmed(ctx, request)
	} else {
		err = s.requests.CreatePending(ctx, request)
	}
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrAlreadyExists(err, "request for event "+eventID+" already exists")
		case errors.Is(err, repositories.ErrNoFreeSlots):
			return nil, apperrors.ErrCapacityExceeded
		default:
			return nil, apperrors.InternalError(err)
		}
	}
	logger.CtxInfo(ctx, "participation request created",
		"request_id", request.ID, "event_id", eventID, "status", request.Status)

	resp := toRequestResponse(request)
	return &resp, nil
}

// Cancel moves the requester's own request to CANCELED. A slot claimed by a
// confirmed request is not released on cancel.
func (s *requestService) Cancel(ctx context.Context, userID, requestID string) (*dto.RequestResponse, error) {
	request, err := s.requests.FindByIDAndRequester(ctx, requestID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "request with id="+requestID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if request.Status == models.RequestStatusCanceled || request.Status == models.RequestStatusRejected {
		return nil, apperrors.ErrConflict("request in status " + string(request.Status) + " cannot be canceled")
	}

	if err := s.requests.UpdateStatus(ctx, requestID, models.RequestStatusCanceled); err != nil {
		return nil, apperrors.InternalError(err)
	}
	request.Status = models.RequestStatusCanceled

	resp := toRequestResponse(request)
	return &resp, nil
}

func (s *requestService) GetOwn(ctx context.Context, userID string) ([]dto.RequestResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "user with id="+userID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	requests, err := s.requests.FindAllByRequester(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toRequestResponses(requests), nil
}

func (s *requestService) GetForEvent(ctx context.Context, userID, eventID string) ([]dto.RequestResponse, error) {
	if _, err := s.events.FindByIDAndInitiator(ctx, eventID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	requests, err := s.requests.FindAllByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toRequestResponses(requests), nil
}

// DecideForEvent confirms or rejects a batch of pending requests of the
// initiator's event. Confirmations are processed in input order; once the
// participant limit is hit the remaining requests of the batch are rejected.
func (s *requestService) DecideForEvent(ctx context.Context, userID, eventID string, update dto.RequestStatusUpdate) (*dto.RequestStatusUpdateResult, error) {
	event, err := s.events.FindByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}

	decision := models.RequestStatus(update.Status)
	if decision != models.RequestStatusConfirmed && decision != models.RequestStatusRejected {
		return nil, apperrors.ErrInvalidOperation("status must be CONFIRMED or REJECTED")
	}

	if event.ParticipantLimit > 0 && event.ConfirmedRequests >= event.ParticipantLimit {
		return nil, apperrors.ErrCapacityExceeded
	}

	requests, err := s.requests.FindAllByIDInForEvent(ctx, update.RequestIDs, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(requests) != len(update.RequestIDs) {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound, "some requests were not found for event with id="+eventID)
	}
	for i := range requests {
		if requests[i].Status != models.RequestStatusPending {
			return nil, apperrors.ErrConflict("request must have status PENDING")
		}
	}

	byID := make(map[string]*models.Request, len(requests))
	for i := range requests {
		byID[requests[i].ID] = &requests[i]
	}

	result := &dto.RequestStatusUpdateResult{
		ConfirmedRequests: []dto.RequestResponse{},
		RejectedRequests:  []dto.RequestResponse{},
	}

	full := false
	for _, id := range update.RequestIDs {
		request := byID[id]

		if decision == models.RequestStatusRejected || full {
			if err := s.requests.UpdateStatus(ctx, id, models.RequestStatusRejected); err != nil {
				return nil, apperrors.InternalError(err)
			}
			request.Status = models.RequestStatusRejected
			result.RejectedRequests = append(result.RejectedRequests, toRequestResponse(request))
			continue
		}

		err := s.requests.ConfirmRequest(ctx, id, eventID)
		if errors.Is(err, repositories.ErrNoFreeSlots) {
			full = true
			if err := s.requests.UpdateStatus(ctx, id, models.RequestStatusRejected); err != nil {
				return nil, apperrors.InternalError(err)
			}
			request.Status = models.RequestStatusRejected
			result.RejectedRequests = append(result.RejectedRequests, toRequestResponse(request))
			continue
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		request.Status = models.RequestStatusConfirmed
		result.ConfirmedRequests = append(result.ConfirmedRequests, toRequestResponse(request))
	}

	logger.CtxInfo(ctx, "participation requests decided",
		"event_id", eventID,
		"confirmed", len(result.ConfirmedRequests),
		"rejected", len(result.RejectedRequests))
	return result, nil
}
