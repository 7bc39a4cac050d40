package models

import (
	"github.com/atlascrm/backend/internal/domain/company"
	"github.com/atlascrm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for Company tenants.
// VatRate stays a raw string column: legacy rows carry free text there.
type CompanyModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(200);not null"`
	Country  string `gorm:"type:varchar(100)"`
	Currency string `gorm:"type:varchar(3);not null;default:'XAF'"`
	VatRate  string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Country:           m.Country,
		Currency:          valueobject.Currency(m.Currency),
		VatRate:           m.VatRate,
	}
}

// FromDomain populates the persistence model from a domain Company
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Country = c.Country
	m.Currency = string(c.Currency)
	m.VatRate = c.VatRate
}

// AttachmentModel tracks the object-storage files owned by a business record
// so cascading deletes know which keys to remove.
type AttachmentModel struct {
	BaseModel
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RecordType string    `gorm:"type:varchar(30);not null;index:idx_attachment_record,priority:1"`
	RecordID   uuid.UUID `gorm:"type:uuid;not null;index:idx_attachment_record,priority:2"`
	StorageKey string    `gorm:"type:varchar(500);not null"`
	FileName   string    `gorm:"type:varchar(300)"`
	SizeBytes  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "attachments"
}
