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

// GormDisbursementRepository implements treasury.DisbursementRepository using GORM
type GormDisbursementRepository struct {
	db *gorm.DB
}

// NewGormDisbursementRepository creates a new GormDisbursementRepository
func NewGormDisbursementRepository(db *gorm.DB) *GormDisbursementRepository {
	return &GormDisbursementRepository{db: db}
}

// FindByID finds a disbursement by ID. Returns nil when no row exists.
func (r *GormDisbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Disbursement, error) {
	var model models.DisbursementModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists a company's disbursements with pagination
func (r *GormDisbursementRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]treasury.Disbursement, error) {
	query := conn(ctx, r.db).Model(&models.DisbursementModel{}).Where("company_id = ?", companyID)
	if filter.Search != "" {
		query = query.Where("label ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, "date DESC")

	var rows []models.DisbursementModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	disbursements := make([]treasury.Disbursement, len(rows))
	for i := range rows {
		disbursements[i] = *rows[i].ToDomain()
	}
	return disbursements, nil
}

// Save creates or updates a disbursement
func (r *GormDisbursementRepository) Save(ctx context.Context, disbursement *treasury.Disbursement) error {
	var model models.DisbursementModel
	model.FromDomain(disbursement)
	return conn(ctx, r.db).Save(&model).Error
}

// Delete removes a disbursement
func (r *GormDisbursementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.DisbursementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByPayment removes the disbursement produced by a payment.
// Absence is not an error.
func (r *GormDisbursementRepository) DeleteByPayment(ctx context.Context, paymentID uuid.UUID) error {
	return conn(ctx, r.db).
		Delete(&models.DisbursementModel{}, "payment_id = ?", paymentID).Error
}

// Ensure GormDisbursementRepository implements treasury.DisbursementRepository
var _ treasury.DisbursementRepository = (*GormDisbursementRepository)(nil)
