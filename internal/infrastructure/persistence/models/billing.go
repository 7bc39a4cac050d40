package models

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root
type InvoiceModel struct {
	CompanyAggregateModel
	InvoiceNumber string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_company_number,priority:2"`
	ClientID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	ClientName    string             `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	AmountType    billing.AmountType `gorm:"type:varchar(3);not null;default:'TTC'"`
	PaidAmount    decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	IsPaid        bool               `gorm:"not null;default:false;index"`
	PaymentTerm   string             `gorm:"type:varchar(20);not null;default:'ON_RECEIPT'"`
	IssueDate     time.Time          `gorm:"not null;index"`
	Remark        string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		InvoiceNumber:        m.InvoiceNumber,
		ClientID:             m.ClientID,
		ClientName:           m.ClientName,
		Amount:               m.Amount,
		AmountType:           m.AmountType,
		PaidAmount:           m.PaidAmount,
		IsPaid:               m.IsPaid,
		PaymentTerm:          billing.PaymentTerm(m.PaymentTerm),
		IssueDate:            m.IssueDate,
		Remark:               m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.FromDomainCompanyAggregateRoot(i.CompanyAggregateRoot)
	m.InvoiceNumber = i.InvoiceNumber
	m.ClientID = i.ClientID
	m.ClientName = i.ClientName
	m.Amount = i.Amount
	m.AmountType = i.AmountType
	m.PaidAmount = i.PaidAmount
	m.IsPaid = i.IsPaid
	m.PaymentTerm = string(i.PaymentTerm)
	m.IssueDate = i.IssueDate
	m.Remark = i.Remark
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root
type PurchaseOrderModel struct {
	CompanyAggregateModel
	OrderNumber  string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_po_company_number,priority:2"`
	SupplierID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	SupplierName string             `gorm:"type:varchar(200);not null"`
	Amount       decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	AmountType   billing.AmountType `gorm:"type:varchar(3);not null;default:'TTC'"`
	PaidAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	IsPaid       bool               `gorm:"not null;default:false;index"`
	IssueDate    time.Time          `gorm:"not null;index"`
	Remark       string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *billing.PurchaseOrder {
	return &billing.PurchaseOrder{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		OrderNumber:          m.OrderNumber,
		SupplierID:           m.SupplierID,
		SupplierName:         m.SupplierName,
		Amount:               m.Amount,
		AmountType:           m.AmountType,
		PaidAmount:           m.PaidAmount,
		IsPaid:               m.IsPaid,
		IssueDate:            m.IssueDate,
		Remark:               m.Remark,
	}
}

// FromDomain populates the persistence model from a domain PurchaseOrder
func (m *PurchaseOrderModel) FromDomain(p *billing.PurchaseOrder) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.OrderNumber = p.OrderNumber
	m.SupplierID = p.SupplierID
	m.SupplierName = p.SupplierName
	m.Amount = p.Amount
	m.AmountType = p.AmountType
	m.PaidAmount = p.PaidAmount
	m.IsPaid = p.IsPaid
	m.IssueDate = p.IssueDate
	m.Remark = p.Remark
}

// PaymentModel is the persistence model for Payment entities
type PaymentModel struct {
	BaseModel
	CompanyID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Mode            billing.PaymentMode `gorm:"type:varchar(20);not null"`
	InvoiceID       *uuid.UUID          `gorm:"type:uuid;index"`
	PurchaseOrderID *uuid.UUID          `gorm:"type:uuid;index"`
	Reference       string              `gorm:"type:varchar(100)"`
	PaidAt          time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:      m.BaseModel.ToDomain(),
		CompanyID:       m.CompanyID,
		Amount:          m.Amount,
		Mode:            m.Mode,
		InvoiceID:       m.InvoiceID,
		PurchaseOrderID: m.PurchaseOrderID,
		Reference:       m.Reference,
		PaidAt:          m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CompanyID = p.CompanyID
	m.Amount = p.Amount
	m.Mode = p.Mode
	m.InvoiceID = p.InvoiceID
	m.PurchaseOrderID = p.PurchaseOrderID
	m.Reference = p.Reference
	m.PaidAt = p.PaidAt
}
