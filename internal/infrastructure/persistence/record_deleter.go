package persistence

import (
	"context"

	appdeletion "github.com/atlascrm/backend/internal/application/deletion"
	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recordDeleter is the shared base of the per-record-type deleters. It
// handles attachment bookkeeping; the embedding type does the row deletes.
type recordDeleter struct {
	db          *gorm.DB
	attachments *GormAttachmentRepository
	recordType  deletion.RecordType
}

// AttachmentKeys lists the storage keys owned by the record
func (d *recordDeleter) AttachmentKeys(ctx context.Context, companyID, recordID uuid.UUID) ([]string, error) {
	return d.attachments.KeysForRecord(ctx, companyID, d.recordType, recordID)
}

// deleteScoped removes one company-scoped row and the record's attachment
// rows. Missing rows surface as shared.ErrNotFound.
func (d *recordDeleter) deleteScoped(ctx context.Context, model interface{}, companyID, recordID uuid.UUID) error {
	result := conn(ctx, d.db).Where("company_id = ? AND id = ?", companyID, recordID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return d.attachments.DeleteForRecord(ctx, companyID, d.recordType, recordID)
}

// ClientDeleter physically removes client records
type ClientDeleter struct {
	recordDeleter
}

// NewClientDeleter creates a deleter for client records
func NewClientDeleter(db *gorm.DB, attachments *GormAttachmentRepository) *ClientDeleter {
	return &ClientDeleter{recordDeleter{db: db, attachments: attachments, recordType: deletion.RecordTypeClients}}
}

// DeleteRecord removes the client row
func (d *ClientDeleter) DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error {
	return d.deleteScoped(ctx, &models.ClientModel{}, companyID, recordID)
}

// SupplierDeleter physically removes supplier records
type SupplierDeleter struct {
	recordDeleter
}

// NewSupplierDeleter creates a deleter for supplier records
func NewSupplierDeleter(db *gorm.DB, attachments *GormAttachmentRepository) *SupplierDeleter {
	return &SupplierDeleter{recordDeleter{db: db, attachments: attachments, recordType: deletion.RecordTypeSuppliers}}
}

// DeleteRecord removes the supplier row
func (d *SupplierDeleter) DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error {
	return d.deleteScoped(ctx, &models.SupplierModel{}, companyID, recordID)
}

// InvoiceDeleter physically removes an invoice together with its payments and
// the receipts those payments generated.
type InvoiceDeleter struct {
	recordDeleter
}

// NewInvoiceDeleter creates a deleter for invoice records
func NewInvoiceDeleter(db *gorm.DB, attachments *GormAttachmentRepository) *InvoiceDeleter {
	return &InvoiceDeleter{recordDeleter{db: db, attachments: attachments, recordType: deletion.RecordTypeInvoices}}
}

// DeleteRecord removes receipts linked to the invoice's payments, then the
// payments, then the invoice itself.
func (d *InvoiceDeleter) DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error {
	tx := conn(ctx, d.db)

	paymentIDs := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.PaymentModel{}).
		Select("id").
		Where("company_id = ? AND invoice_id = ?", companyID, recordID)
	if err := tx.Where("company_id = ? AND payment_id IN (?)", companyID, paymentIDs).
		Delete(&models.ReceiptModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("company_id = ? AND invoice_id = ?", companyID, recordID).
		Delete(&models.PaymentModel{}).Error; err != nil {
		return err
	}
	return d.deleteScoped(ctx, &models.InvoiceModel{}, companyID, recordID)
}

// PurchaseOrderDeleter physically removes a purchase order together with its
// payments and the disbursements those payments generated.
type PurchaseOrderDeleter struct {
	recordDeleter
}

// NewPurchaseOrderDeleter creates a deleter for purchase order records
func NewPurchaseOrderDeleter(db *gorm.DB, attachments *GormAttachmentRepository) *PurchaseOrderDeleter {
	return &PurchaseOrderDeleter{recordDeleter{db: db, attachments: attachments, recordType: deletion.RecordTypePurchaseOrder}}
}

// DeleteRecord removes disbursements linked to the order's payments, then the
// payments, then the purchase order itself.
func (d *PurchaseOrderDeleter) DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error {
	tx := conn(ctx, d.db)

	paymentIDs := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.PaymentModel{}).
		Select("id").
		Where("company_id = ? AND purchase_order_id = ?", companyID, recordID)
	if err := tx.Where("company_id = ? AND payment_id IN (?)", companyID, paymentIDs).
		Delete(&models.DisbursementModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("company_id = ? AND purchase_order_id = ?", companyID, recordID).
		Delete(&models.PaymentModel{}).Error; err != nil {
		return err
	}
	return d.deleteScoped(ctx, &models.PurchaseOrderModel{}, companyID, recordID)
}

// ReceiptDeleter physically removes receipt records
type ReceiptDeleter struct {
	recordDeleter
}

// NewReceiptDeleter creates a deleter for receipt records
func NewReceiptDeleter(db *gorm.DB, attachments *GormAttachmentRepository) *ReceiptDeleter {
	return &ReceiptDeleter{recordDeleter{db: db, attachments: attachments, recordType: deletion.RecordTypeReceipts}}
}

// DeleteRecord removes the receipt row
func (d *ReceiptDeleter) DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error {
	return d.deleteScoped(ctx, &models.ReceiptModel{}, companyID, recordID)
}

// DisbursementDeleter physically removes disbursement records
type DisbursementDeleter struct {
	recordDeleter
}

// NewDisbursementDeleter creates a deleter for disbursement records
func NewDisbursementDeleter(db *gorm.DB, attachments *GormAttachmentRepository) *DisbursementDeleter {
	return &DisbursementDeleter{recordDeleter{db: db, attachments: attachments, recordType: deletion.RecordTypeDisbursements}}
}

// DeleteRecord removes the disbursement row
func (d *DisbursementDeleter) DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error {
	return d.deleteScoped(ctx, &models.DisbursementModel{}, companyID, recordID)
}

// Ensure every deleter implements the application contract
var (
	_ appdeletion.RecordDeleter = (*ClientDeleter)(nil)
	_ appdeletion.RecordDeleter = (*SupplierDeleter)(nil)
	_ appdeletion.RecordDeleter = (*InvoiceDeleter)(nil)
	_ appdeletion.RecordDeleter = (*PurchaseOrderDeleter)(nil)
	_ appdeletion.RecordDeleter = (*ReceiptDeleter)(nil)
	_ appdeletion.RecordDeleter = (*DisbursementDeleter)(nil)
)
