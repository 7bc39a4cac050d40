package persistence

import (
	"context"
	"errors"

	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeletionPolicyRepository implements deletion.PolicyRepository using GORM
type GormDeletionPolicyRepository struct {
	db *gorm.DB
}

// NewGormDeletionPolicyRepository creates a new GormDeletionPolicyRepository
func NewGormDeletionPolicyRepository(db *gorm.DB) *GormDeletionPolicyRepository {
	return &GormDeletionPolicyRepository{db: db}
}

// FindForCompany finds the policy of one record type.
// Returns nil when the company never configured one.
func (r *GormDeletionPolicyRepository) FindForCompany(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType) (*deletion.Policy, error) {
	var model models.DeletionPolicyModel
	if err := conn(ctx, r.db).
		Where("company_id = ? AND record_type = ?", companyID, recordType.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists the configured policies of a company
func (r *GormDeletionPolicyRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID) ([]deletion.Policy, error) {
	var rows []models.DeletionPolicyModel
	if err := conn(ctx, r.db).
		Where("company_id = ?", companyID).
		Order("record_type ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	policies := make([]deletion.Policy, len(rows))
	for i := range rows {
		policies[i] = *rows[i].ToDomain()
	}
	return policies, nil
}

// Save creates or updates a policy
func (r *GormDeletionPolicyRepository) Save(ctx context.Context, policy *deletion.Policy) error {
	var model models.DeletionPolicyModel
	model.FromDomain(policy)
	return conn(ctx, r.db).Save(&model).Error
}

// Ensure GormDeletionPolicyRepository implements deletion.PolicyRepository
var _ deletion.PolicyRepository = (*GormDeletionPolicyRepository)(nil)
