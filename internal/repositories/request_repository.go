package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"afisha_backend/internal/models"
)

// ErrNoFreeSlots is returned when the participant limit of the event has
// already been reached and no further slot can be claimed.
var ErrNoFreeSlots = errors.New("participant limit reached")

type RequestRepository interface {
	CreatePending(ctx context.Context, request *models.Request) error
	CreateConfirmed(ctx context.Context, request *models.Request) error
	ConfirmRequest(ctx context.Context, requestID, eventID string) error
	UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus) error
	FindByID(ctx context.Context, id string) (*models.Request, error)
	FindByIDAndRequester(ctx context.Context, id, requesterID string) (*models.Request, error)
	FindAllByRequester(ctx context.Context, requesterID string) ([]models.Request, error)
	FindAllByEvent(ctx context.Context, eventID string) ([]models.Request, error)
	FindAllByIDInForEvent(ctx context.Context, ids []string, eventID string) ([]models.Request, error)
	IsConfirmedParticipant(ctx context.Context, userID, eventID string) (bool, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreatePending(ctx context.Context, request *models.Request) error {
	request.Status = models.RequestStatusPending
	return r.db.WithContext(ctx).Omit("Event", "Requester").Create(request).Error
}

// CreateConfirmed inserts an auto-confirmed request and claims a slot in a
// single transaction. The conditional increment is the only capacity check,
// so concurrent inserts can never push confirmed_requests past the limit.
func (r *requestRepository) CreateConfirmed(ctx context.Context, request *models.Request) error {
	request.Status = models.RequestStatusConfirmed
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := occupySlot(tx, request.EventID); err != nil {
			return err
		}
		return tx.Omit("Event", "Requester").Create(request).Error
	})
}

// ConfirmRequest flips one pending request to CONFIRMED, claiming a slot
// atomically. Returns ErrNoFreeSlots when the event is already full.
func (r *requestRepository) ConfirmRequest(ctx context.Context, requestID, eventID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := occupySlot(tx, eventID); err != nil {
			return err
		}
		return tx.Model(&models.Request{}).
			Where("id = ?", requestID).
			UpdateColumn("status", models.RequestStatusConfirmed).Error
	})
}

func occupySlot(tx *gorm.DB, eventID string) error {
	result := tx.Model(&models.Event{}).
		Where("id = ? AND (participant_limit = 0 OR confirmed_requests < participant_limit)", eventID).
		UpdateColumn("confirmed_requests", gorm.Expr("confirmed_requests + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoFreeSlots
	}
	return nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ?", requestID).
		UpdateColumn("status", status).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	var request models.Request
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindByIDAndRequester(ctx context.Context, id, requesterID string) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ?", id, requesterID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindAllByRequester(ctx context.Context, requesterID string) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindAllByEvent(ctx context.Context, eventID string) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindAllByIDInForEvent(ctx context.Context, ids []string, eventID string) ([]models.Request, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Where("id IN ? AND event_id = ?", ids, eventID).
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) IsConfirmedParticipant(ctx context.Context, userID, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("requester_id = ? AND event_id = ? AND status = ?", userID, eventID, models.RequestStatusConfirmed).
		Count(&count).Error
	return count > 0, err
}
