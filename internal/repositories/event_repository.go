package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindByIDAndState(ctx context.Context, id string, state models.EventState) (*models.Event, error)
	FindByIDAndInitiator(ctx context.Context, id, initiatorID string) (*models.Event, error)
	FindAllByInitiator(ctx context.Context, initiatorID string, offset, limit int) ([]models.Event, error)
	FindAllByIDIn(ctx context.Context, ids []string) ([]models.Event, error)
	Search(ctx context.Context, params dto.EventSearchParams) ([]models.Event, error)
	UpdateViews(ctx context.Context, eventID string, views int) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Initiator").Preload("Location")
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit("Category", "Initiator").Create(event).Error
}

// Update saves the event row and its owned location. Category and initiator
// rows are referenced, never written through the event.
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Omit("Category", "Initiator").
		Save(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.withRelations(r.db.WithContext(ctx)).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByIDAndState(ctx context.Context, id string, state models.EventState) (*models.Event, error) {
	var event models.Event
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ? AND state = ?", id, state).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByIDAndInitiator(ctx context.Context, id, initiatorID string) (*models.Event, error) {
	var event models.Event
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ? AND initiator_id = ?", id, initiatorID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAllByInitiator(ctx context.Context, initiatorID string, offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("initiator_id = ?", initiatorID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindAllByIDIn(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var events []models.Event
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Search(ctx context.Context, params dto.EventSearchParams) ([]models.Event, error) {
	query := r.withRelations(r.db.WithContext(ctx)).Model(&models.Event{})
	for _, p := range BuildEventPredicates(params, time.Now()) {
		query = p.Apply(query)
	}

	switch params.SortBy {
	case "VIEWS":
		query = query.Order("views " + orderDirection(params.Direction, "DESC"))
	case "EVENT_DATE":
		query = query.Order("event_date " + orderDirection(params.Direction, "ASC"))
	default:
		// RATING is computed after materialization; fall back to a stable order.
		query = query.Order("created_at ASC")
	}

	var events []models.Event
	err := query.Offset(params.From).Limit(params.Size).Find(&events).Error
	return events, err
}

// orderDirection validates a requested sort direction, falling back to the
// natural one of the sorted field.
func orderDirection(direction, fallback string) string {
	switch strings.ToUpper(direction) {
	case "ASC", "DESC":
		return strings.ToUpper(direction)
	default:
		return fallback
	}
}

func (r *eventRepository) UpdateViews(ctx context.Context, eventID string, views int) error {
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("views", views).Error
}
