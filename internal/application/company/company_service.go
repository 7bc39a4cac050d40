package company

import (
	"context"
	"fmt"

	"github.com/atlascrm/backend/internal/domain/company"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages the company (tenant) registry
type Service struct {
	companies company.Repository
	logger    *zap.Logger
}

// NewService creates a company service
func NewService(companies company.Repository, logger *zap.Logger) *Service {
	return &Service{companies: companies, logger: logger}
}

// RegisterInput carries the parameters of a new company
type RegisterInput struct {
	Name     string
	Country  string
	Currency valueobject.Currency
	VatRate  string
}

// Register creates a company tenant
func (s *Service) Register(ctx context.Context, in RegisterInput) (*company.Company, error) {
	c, err := company.New(in.Name, in.Currency)
	if err != nil {
		return nil, err
	}
	c.Country = in.Country
	c.VatRate = in.VatRate

	if err := s.companies.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	s.logger.Info("Company registered",
		zap.String("company_id", c.ID.String()),
		zap.String("name", c.Name),
	)
	return c, nil
}

// Get loads a company by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.ErrCompanyNotFound
	}
	return c, nil
}

// UpdateVatRate changes the stored VAT rate string. The raw text is kept as
// given; parsing stays defensive at the points of use.
func (s *Service) UpdateVatRate(ctx context.Context, id uuid.UUID, vatRate string) (*company.Company, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.VatRate = vatRate
	c.IncrementVersion()
	if err := s.companies.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	return c, nil
}
