package treasury

import (
	"context"
	"testing"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treasury.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, kind treasury.TransactionKind) ([]treasury.Category, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]treasury.Category), args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, category *treasury.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) HasNatures(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) SaveNature(ctx context.Context, nature *treasury.Nature) error {
	return m.Called(ctx, nature).Error(0)
}

func (m *mockCategoryRepo) FindNatures(ctx context.Context, categoryID uuid.UUID) ([]treasury.Nature, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]treasury.Nature), args.Error(1)
}

type mockSourceRepo struct{ mock.Mock }

func (m *mockSourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Source, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treasury.Source), args.Error(1)
}

func (m *mockSourceRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID) ([]treasury.Source, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]treasury.Source), args.Error(1)
}

func (m *mockSourceRepo) Save(ctx context.Context, source *treasury.Source) error {
	return m.Called(ctx, source).Error(0)
}

func (m *mockSourceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestDeleteCategory_RejectedWhileNaturesExist(t *testing.T) {
	categories := new(mockCategoryRepo)
	sources := new(mockSourceRepo)
	service := NewCategoryService(categories, sources, zap.NewNop())

	companyID := uuid.New()
	category, err := treasury.NewCategory(companyID, "Administration", treasury.TransactionKindDisbursement)
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categories.On("HasNatures", mock.Anything, category.ID).Return(true, nil)

	err = service.DeleteCategory(context.Background(), companyID, category.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CATEGORY_IN_USE", domainErr.Code)
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCategory_RemovesLeafCategory(t *testing.T) {
	categories := new(mockCategoryRepo)
	sources := new(mockSourceRepo)
	service := NewCategoryService(categories, sources, zap.NewNop())

	companyID := uuid.New()
	category, err := treasury.NewCategory(companyID, "Sales", treasury.TransactionKindReceipt)
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categories.On("HasNatures", mock.Anything, category.ID).Return(false, nil)
	categories.On("Delete", mock.Anything, category.ID).Return(nil)

	err = service.DeleteCategory(context.Background(), companyID, category.ID)

	require.NoError(t, err)
	categories.AssertExpectations(t)
}

func TestDeleteCategory_WrongCompanyIsNotFound(t *testing.T) {
	categories := new(mockCategoryRepo)
	sources := new(mockSourceRepo)
	service := NewCategoryService(categories, sources, zap.NewNop())

	category, err := treasury.NewCategory(uuid.New(), "Sales", treasury.TransactionKindReceipt)
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)

	err = service.DeleteCategory(context.Background(), uuid.New(), category.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddNature(t *testing.T) {
	categories := new(mockCategoryRepo)
	sources := new(mockSourceRepo)
	service := NewCategoryService(categories, sources, zap.NewNop())

	companyID := uuid.New()
	category, err := treasury.NewCategory(companyID, "Administration", treasury.TransactionKindDisbursement)
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categories.On("SaveNature", mock.Anything, mock.MatchedBy(func(n *treasury.Nature) bool {
		return n.CategoryID == category.ID && n.IsVatPayment
	})).Return(nil)

	nature, err := service.AddNature(context.Background(), companyID, category.ID, "Taxes", true)

	require.NoError(t, err)
	assert.True(t, nature.IsVatPayment)
	categories.AssertExpectations(t)
}
