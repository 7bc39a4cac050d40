package models

import (
	"github.com/atlascrm/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client aggregate root
type ClientModel struct {
	CompanyAggregateModel
	Name       string          `gorm:"type:varchar(200);not null;index"`
	Email      string          `gorm:"type:varchar(200);index"`
	Phone      string          `gorm:"type:varchar(50)"`
	Due        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		Due:                  m.Due,
		PaidAmount:           m.PaidAmount,
	}
}

// FromDomain populates the persistence model from a domain Client
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Due = c.Due
	m.PaidAmount = c.PaidAmount
}

// SupplierModel is the persistence model for the Supplier aggregate root
type SupplierModel struct {
	CompanyAggregateModel
	Name       string          `gorm:"type:varchar(200);not null;index"`
	Email      string          `gorm:"type:varchar(200);index"`
	Phone      string          `gorm:"type:varchar(50)"`
	Due        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		Due:                  m.Due,
		PaidAmount:           m.PaidAmount,
	}
}

// FromDomain populates the persistence model from a domain Supplier
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	m.Name = s.Name
	m.Email = s.Email
	m.Phone = s.Phone
	m.Due = s.Due
	m.PaidAmount = s.PaidAmount
}
