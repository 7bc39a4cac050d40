package models

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptModel is the persistence model for Receipt aggregates
type ReceiptModel struct {
	CompanyAggregateModel
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	NatureID   *uuid.UUID      `gorm:"type:uuid;index"`
	SourceID   *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentID  *uuid.UUID      `gorm:"type:uuid;index"`
	Label      string          `gorm:"type:varchar(300)"`
	Date       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt
func (m *ReceiptModel) ToDomain() *treasury.Receipt {
	return &treasury.Receipt{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Amount:               m.Amount,
		CategoryID:           m.CategoryID,
		NatureID:             m.NatureID,
		SourceID:             m.SourceID,
		PaymentID:            m.PaymentID,
		Label:                m.Label,
		Date:                 m.Date,
	}
}

// FromDomain populates the persistence model from a domain Receipt
func (m *ReceiptModel) FromDomain(r *treasury.Receipt) {
	m.FromDomainCompanyAggregateRoot(r.CompanyAggregateRoot)
	m.Amount = r.Amount
	m.CategoryID = r.CategoryID
	m.NatureID = r.NatureID
	m.SourceID = r.SourceID
	m.PaymentID = r.PaymentID
	m.Label = r.Label
	m.Date = r.Date
}

// DisbursementModel is the persistence model for Disbursement aggregates
type DisbursementModel struct {
	CompanyAggregateModel
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	NatureID   *uuid.UUID      `gorm:"type:uuid;index"`
	SourceID   *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentID  *uuid.UUID      `gorm:"type:uuid;index"`
	Label      string          `gorm:"type:varchar(300)"`
	IsFiscal   bool            `gorm:"not null;default:false;index"`
	IsPaid     bool            `gorm:"not null;default:false;index"`
	Date       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DisbursementModel) TableName() string {
	return "disbursements"
}

// ToDomain converts the persistence model to a domain Disbursement
func (m *DisbursementModel) ToDomain() *treasury.Disbursement {
	return &treasury.Disbursement{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Amount:               m.Amount,
		CategoryID:           m.CategoryID,
		NatureID:             m.NatureID,
		SourceID:             m.SourceID,
		PaymentID:            m.PaymentID,
		Label:                m.Label,
		IsFiscal:             m.IsFiscal,
		IsPaid:               m.IsPaid,
		Date:                 m.Date,
	}
}

// FromDomain populates the persistence model from a domain Disbursement
func (m *DisbursementModel) FromDomain(d *treasury.Disbursement) {
	m.FromDomainCompanyAggregateRoot(d.CompanyAggregateRoot)
	m.Amount = d.Amount
	m.CategoryID = d.CategoryID
	m.NatureID = d.NatureID
	m.SourceID = d.SourceID
	m.PaymentID = d.PaymentID
	m.Label = d.Label
	m.IsFiscal = d.IsFiscal
	m.IsPaid = d.IsPaid
	m.Date = d.Date
}

// CategoryModel is the persistence model for transaction categories
type CategoryModel struct {
	CompanyAggregateModel
	Name string                   `gorm:"type:varchar(150);not null"`
	Kind treasury.TransactionKind `gorm:"type:varchar(15);not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "transaction_categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *treasury.Category {
	return &treasury.Category{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Name:                 m.Name,
		Kind:                 m.Kind,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *treasury.Category) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.Name = c.Name
	m.Kind = c.Kind
}

// NatureModel is the persistence model for transaction natures
type NatureModel struct {
	CompanyAggregateModel
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(150);not null"`
	IsVatPayment bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NatureModel) TableName() string {
	return "transaction_natures"
}

// ToDomain converts the persistence model to a domain Nature
func (m *NatureModel) ToDomain() *treasury.Nature {
	return &treasury.Nature{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		CategoryID:           m.CategoryID,
		Name:                 m.Name,
		IsVatPayment:         m.IsVatPayment,
	}
}

// FromDomain populates the persistence model from a domain Nature
func (m *NatureModel) FromDomain(n *treasury.Nature) {
	m.FromDomainCompanyAggregateRoot(n.CompanyAggregateRoot)
	m.CategoryID = n.CategoryID
	m.Name = n.Name
	m.IsVatPayment = n.IsVatPayment
}

// SourceModel is the persistence model for transaction sources
type SourceModel struct {
	CompanyAggregateModel
	Name string `gorm:"type:varchar(150);not null"`
}

// TableName returns the table name for GORM
func (SourceModel) TableName() string {
	return "transaction_sources"
}

// ToDomain converts the persistence model to a domain Source
func (m *SourceModel) ToDomain() *treasury.Source {
	return &treasury.Source{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Name:                 m.Name,
	}
}

// FromDomain populates the persistence model from a domain Source
func (m *SourceModel) FromDomain(s *treasury.Source) {
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	m.Name = s.Name
}
