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

// GormCategoryRepository implements treasury.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by ID. Returns nil when no row exists.
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists a company's categories for one transaction kind
func (r *GormCategoryRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, kind treasury.TransactionKind) ([]treasury.Category, error) {
	var rows []models.CategoryModel
	if err := conn(ctx, r.db).
		Where("company_id = ? AND kind = ?", companyID, kind).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]treasury.Category, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *treasury.Category) error {
	var model models.CategoryModel
	model.FromDomain(category)
	return conn(ctx, r.db).Save(&model).Error
}

// Delete removes a category. The call fails with a conflict while child
// natures still reference it, leaving the row untouched.
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	hasNatures, err := r.HasNatures(ctx, id)
	if err != nil {
		return err
	}
	if hasNatures {
		return shared.ErrConflict
	}

	result := conn(ctx, r.db).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasNatures checks whether the category still has child natures
func (r *GormCategoryRepository) HasNatures(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.NatureModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveNature creates or updates a nature
func (r *GormCategoryRepository) SaveNature(ctx context.Context, nature *treasury.Nature) error {
	var model models.NatureModel
	model.FromDomain(nature)
	return conn(ctx, r.db).Save(&model).Error
}

// FindNatures lists the natures of a category
func (r *GormCategoryRepository) FindNatures(ctx context.Context, categoryID uuid.UUID) ([]treasury.Nature, error) {
	var rows []models.NatureModel
	if err := conn(ctx, r.db).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	natures := make([]treasury.Nature, len(rows))
	for i := range rows {
		natures[i] = *rows[i].ToDomain()
	}
	return natures, nil
}

// Ensure GormCategoryRepository implements treasury.CategoryRepository
var _ treasury.CategoryRepository = (*GormCategoryRepository)(nil)
