package persistence

import (
	"context"

	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository tracks which object-storage keys belong to a
// business record, so cascading deletes can clean up stored files.
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// KeysForRecord lists the storage keys owned by one record
func (r *GormAttachmentRepository) KeysForRecord(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType, recordID uuid.UUID) ([]string, error) {
	var keys []string
	if err := conn(ctx, r.db).
		Model(&models.AttachmentModel{}).
		Where("company_id = ? AND record_type = ? AND record_id = ?", companyID, recordType.String(), recordID).
		Pluck("storage_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteForRecord removes the attachment rows of one record. A record
// without attachments is not an error.
func (r *GormAttachmentRepository) DeleteForRecord(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType, recordID uuid.UUID) error {
	return conn(ctx, r.db).
		Where("company_id = ? AND record_type = ? AND record_id = ?", companyID, recordType.String(), recordID).
		Delete(&models.AttachmentModel{}).Error
}
