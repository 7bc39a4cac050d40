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

// GormReceiptRepository implements treasury.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by ID. Returns nil when no row exists.
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Receipt, error) {
	var model models.ReceiptModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists a company's receipts with pagination
func (r *GormReceiptRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]treasury.Receipt, error) {
	query := conn(ctx, r.db).Model(&models.ReceiptModel{}).Where("company_id = ?", companyID)
	if filter.Search != "" {
		query = query.Where("label ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, "date DESC")

	var rows []models.ReceiptModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	receipts := make([]treasury.Receipt, len(rows))
	for i := range rows {
		receipts[i] = *rows[i].ToDomain()
	}
	return receipts, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *treasury.Receipt) error {
	var model models.ReceiptModel
	model.FromDomain(receipt)
	return conn(ctx, r.db).Save(&model).Error
}

// Delete removes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ReceiptModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByPayment removes the receipt produced by a payment.
// Absence is not an error: not every payment produced a receipt row.
func (r *GormReceiptRepository) DeleteByPayment(ctx context.Context, paymentID uuid.UUID) error {
	return conn(ctx, r.db).
		Delete(&models.ReceiptModel{}, "payment_id = ?", paymentID).Error
}

// Ensure GormReceiptRepository implements treasury.ReceiptRepository
var _ treasury.ReceiptRepository = (*GormReceiptRepository)(nil)
