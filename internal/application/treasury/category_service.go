package treasury

import (
	"context"
	"fmt"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService manages the category / nature / source reference data the
// treasury transactions are classified with.
type CategoryService struct {
	categories treasury.CategoryRepository
	sources    treasury.SourceRepository
	logger     *zap.Logger
}

// NewCategoryService creates the reference data service
func NewCategoryService(categories treasury.CategoryRepository, sources treasury.SourceRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, sources: sources, logger: logger}
}

// CreateCategory adds a transaction category
func (s *CategoryService) CreateCategory(ctx context.Context, companyID uuid.UUID, name string, kind treasury.TransactionKind) (*treasury.Category, error) {
	category, err := treasury.NewCategory(companyID, name, kind)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category. A category that still has child natures
// cannot be removed; the call fails with a conflict and no row is touched.
func (s *CategoryService) DeleteCategory(ctx context.Context, companyID, categoryID uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil || category.CompanyID != companyID {
		return shared.ErrNotFound
	}

	hasNatures, err := s.categories.HasNatures(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category natures: %w", err)
	}
	if hasNatures {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has natures attached")
	}

	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.logger.Info("Category deleted",
		zap.String("category_id", categoryID.String()),
		zap.String("name", category.Name),
	)
	return nil
}

// AddNature attaches a nature to a category
func (s *CategoryService) AddNature(ctx context.Context, companyID, categoryID uuid.UUID, name string, isVatPayment bool) (*treasury.Nature, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil || category.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}

	nature, err := treasury.NewNature(companyID, categoryID, name)
	if err != nil {
		return nil, err
	}
	if isVatPayment {
		nature.IsVatPayment = true
	}
	if err := s.categories.SaveNature(ctx, nature); err != nil {
		return nil, fmt.Errorf("failed to save nature: %w", err)
	}
	return nature, nil
}

// ListCategories lists the categories of a company for one transaction kind
func (s *CategoryService) ListCategories(ctx context.Context, companyID uuid.UUID, kind treasury.TransactionKind) ([]treasury.Category, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind must be RECEIPT or DISBURSEMENT")
	}
	return s.categories.FindAllForCompany(ctx, companyID, kind)
}

// CreateSource adds a transaction source
func (s *CategoryService) CreateSource(ctx context.Context, companyID uuid.UUID, name string) (*treasury.Source, error) {
	source, err := treasury.NewSource(companyID, name)
	if err != nil {
		return nil, err
	}
	if err := s.sources.Save(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to save source: %w", err)
	}
	return source, nil
}

// ListSources lists the sources of a company
func (s *CategoryService) ListSources(ctx context.Context, companyID uuid.UUID) ([]treasury.Source, error) {
	return s.sources.FindAllForCompany(ctx, companyID)
}
