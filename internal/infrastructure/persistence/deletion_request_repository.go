package persistence

import (
	"context"
	"errors"

	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeletionRequestRepository implements deletion.RequestRepository using GORM
type GormDeletionRequestRepository struct {
	db *gorm.DB
}

// NewGormDeletionRequestRepository creates a new GormDeletionRequestRepository
func NewGormDeletionRequestRepository(db *gorm.DB) *GormDeletionRequestRepository {
	return &GormDeletionRequestRepository{db: db}
}

// FindByID finds a deletion request by ID. Returns nil when no row exists.
func (r *GormDeletionRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*deletion.Request, error) {
	var model models.DeletionRequestModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a deletion request by ID within a company
func (r *GormDeletionRequestRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*deletion.Request, error) {
	var model models.DeletionRequestModel
	if err := conn(ctx, r.db).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingByRecordIDs returns unvalidated requests targeting any of the given records
func (r *GormDeletionRequestRepository) FindPendingByRecordIDs(ctx context.Context, companyID uuid.UUID, recordIDs []uuid.UUID) ([]deletion.Request, error) {
	if len(recordIDs) == 0 {
		return []deletion.Request{}, nil
	}

	var rows []models.DeletionRequestModel
	if err := conn(ctx, r.db).
		Where("company_id = ? AND record_id IN ? AND is_validated = ?", companyID, recordIDs, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// FindPendingForCompany lists all unvalidated requests of a company
func (r *GormDeletionRequestRepository) FindPendingForCompany(ctx context.Context, companyID uuid.UUID) ([]deletion.Request, error) {
	var rows []models.DeletionRequestModel
	if err := conn(ctx, r.db).
		Where("company_id = ? AND is_validated = ?", companyID, false).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// Save creates or updates a deletion request
func (r *GormDeletionRequestRepository) Save(ctx context.Context, request *deletion.Request) error {
	var model models.DeletionRequestModel
	model.FromDomain(request)
	return conn(ctx, r.db).Save(&model).Error
}

// SaveAll creates or updates a batch of deletion requests
func (r *GormDeletionRequestRepository) SaveAll(ctx context.Context, requests []*deletion.Request) error {
	if len(requests) == 0 {
		return nil
	}
	rows := make([]models.DeletionRequestModel, len(requests))
	for i, request := range requests {
		rows[i].FromDomain(request)
	}
	return conn(ctx, r.db).Save(&rows).Error
}

// Delete removes a deletion request
func (r *GormDeletionRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.DeletionRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainRequests(rows []models.DeletionRequestModel) []deletion.Request {
	requests := make([]deletion.Request, len(rows))
	for i := range rows {
		requests[i] = *rows[i].ToDomain()
	}
	return requests
}

// Ensure GormDeletionRequestRepository implements deletion.RequestRepository
var _ deletion.RequestRepository = (*GormDeletionRequestRepository)(nil)
