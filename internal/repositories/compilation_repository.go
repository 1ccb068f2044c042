package repositories

import (
	"context"

	"gorm.io/gorm"

	"afisha_backend/internal/models"
)

type CompilationRepository interface {
	Create(ctx context.Context, compilation *models.Compilation) error
	Update(ctx context.Context, compilation *models.Compilation) error
	ReplaceEvents(ctx context.Context, compilation *models.Compilation, events []models.Event) error
	FindByID(ctx context.Context, id string) (*models.Compilation, error)
	FindAll(ctx context.Context, pinned *bool, offset, limit int) ([]models.Compilation, error)
	Delete(ctx context.Context, id string) error
}

type compilationRepository struct {
	db *gorm.DB
}

func NewCompilationRepository(db *gorm.DB) CompilationRepository {
	return &compilationRepository{db: db}
}

func (r *compilationRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Events").
		Preload("Events.Category").
		Preload("Events.Initiator").
		Preload("Events.Location")
}

func (r *compilationRepository) Create(ctx context.Context, compilation *models.Compilation) error {
	return r.db.WithContext(ctx).Create(compilation).Error
}

func (r *compilationRepository) Update(ctx context.Context, compilation *models.Compilation) error {
	return r.db.WithContext(ctx).Omit("Events").Save(compilation).Error
}

func (r *compilationRepository) ReplaceEvents(ctx context.Context, compilation *models.Compilation, events []models.Event) error {
	return r.db.WithContext(ctx).Model(compilation).Association("Events").Replace(events)
}

func (r *compilationRepository) FindByID(ctx context.Context, id string) (*models.Compilation, error) {
	var compilation models.Compilation
	if err := r.withRelations(r.db.WithContext(ctx)).First(&compilation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &compilation, nil
}

func (r *compilationRepository) FindAll(ctx context.Context, pinned *bool, offset, limit int) ([]models.Compilation, error) {
	query := r.withRelations(r.db.WithContext(ctx))
	if pinned != nil {
		query = query.Where("pinned = ?", *pinned)
	}
	var compilations []models.Compilation
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&compilations).Error
	return compilations, err
}

func (r *compilationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Select("Events").Delete(&models.Compilation{BaseModel: models.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
