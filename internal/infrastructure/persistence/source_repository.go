package persistence

import (
	"context"
	"errors"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/atlascrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSourceRepository implements treasury.SourceRepository using GORM
type GormSourceRepository struct {
	db *gorm.DB
}

// NewGormSourceRepository creates a new GormSourceRepository
func NewGormSourceRepository(db *gorm.DB) *GormSourceRepository {
	return &GormSourceRepository{db: db}
}

// FindByID finds a source by ID. Returns nil when no row exists.
func (r *GormSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Source, error) {
	var model models.SourceModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists a company's sources
func (r *GormSourceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID) ([]treasury.Source, error) {
	var rows []models.SourceModel
	if err := conn(ctx, r.db).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	sources := make([]treasury.Source, len(rows))
	for i := range rows {
		sources[i] = *rows[i].ToDomain()
	}
	return sources, nil
}

// Save creates or updates a source
func (r *GormSourceRepository) Save(ctx context.Context, source *treasury.Source) error {
	var model models.SourceModel
	model.FromDomain(source)
	return conn(ctx, r.db).Save(&model).Error
}

// Delete removes a source
func (r *GormSourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.SourceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSourceRepository implements treasury.SourceRepository
var _ treasury.SourceRepository = (*GormSourceRepository)(nil)
