package repositories

import (
	"context"

	"gorm.io/gorm"

	"afisha_backend/internal/models"
)

type EstimationRepository interface {
	Create(ctx context.Context, estimation *models.Estimation) error
	Delete(ctx context.Context, userID, eventID string) error
	RatingFor(ctx context.Context, eventID string) (float64, error)
	RatingsFor(ctx context.Context, eventIDs []string) (map[string]float64, error)
}

type estimationRepository struct {
	db *gorm.DB
}

func NewEstimationRepository(db *gorm.DB) EstimationRepository {
	return &estimationRepository{db: db}
}

func (r *estimationRepository) Create(ctx context.Context, estimation *models.Estimation) error {
	return r.db.WithContext(ctx).Create(estimation).Error
}

func (r *estimationRepository) Delete(ctx context.Context, userID, eventID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.Estimation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *estimationRepository) RatingFor(ctx context.Context, eventID string) (float64, error) {
	var rating float64
	err := r.db.WithContext(ctx).
		Model(&models.Estimation{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(AVG(mark), 0)").
		Scan(&rating).Error
	return rating, err
}

func (r *estimationRepository) RatingsFor(ctx context.Context, eventIDs []string) (map[string]float64, error) {
	ratings := make(map[string]float64, len(eventIDs))
	if len(eventIDs) == 0 {
		return ratings, nil
	}
	var rows []struct {
		EventID string
		Rating  float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Estimation{}).
		Where("event_id IN ?", eventIDs).
		Select("event_id, AVG(mark) AS rating").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ratings[row.EventID] = row.Rating
	}
	return ratings, nil
}
