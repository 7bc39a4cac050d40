package partner

import (
	"context"
	"fmt"

	"github.com/atlascrm/backend/internal/domain/partner"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages clients and suppliers. Balance movements are owned by the
// billing services; this one only covers registration and lookup.
type Service struct {
	clients   partner.ClientRepository
	suppliers partner.SupplierRepository
	logger    *zap.Logger
}

// NewService creates a partner service
func NewService(clients partner.ClientRepository, suppliers partner.SupplierRepository, logger *zap.Logger) *Service {
	return &Service{clients: clients, suppliers: suppliers, logger: logger}
}

// CreateClient registers a client
func (s *Service) CreateClient(ctx context.Context, companyID uuid.UUID, name, email, phone string) (*partner.Client, error) {
	client, err := partner.NewClient(companyID, name)
	if err != nil {
		return nil, err
	}
	client.Email = email
	client.Phone = phone
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	return client, nil
}

// CreateSupplier registers a supplier
func (s *Service) CreateSupplier(ctx context.Context, companyID uuid.UUID, name, email, phone string) (*partner.Supplier, error) {
	supplier, err := partner.NewSupplier(companyID, name)
	if err != nil {
		return nil, err
	}
	supplier.Email = email
	supplier.Phone = phone
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}
	return supplier, nil
}

// GetClient loads one client scoped to the company
func (s *Service) GetClient(ctx context.Context, companyID, clientID uuid.UUID) (*partner.Client, error) {
	client, err := s.clients.FindByIDForCompany(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}
	return client, nil
}

// GetSupplier loads one supplier scoped to the company
func (s *Service) GetSupplier(ctx context.Context, companyID, supplierID uuid.UUID) (*partner.Supplier, error) {
	supplier, err := s.suppliers.FindByIDForCompany(ctx, companyID, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, shared.ErrNotFound
	}
	return supplier, nil
}

// ListClients pages through a company's clients
func (s *Service) ListClients(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	return s.clients.FindAllForCompany(ctx, companyID, filter)
}

// ListSuppliers pages through a company's suppliers
func (s *Service) ListSuppliers(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	return s.suppliers.FindAllForCompany(ctx, companyID, filter)
}
