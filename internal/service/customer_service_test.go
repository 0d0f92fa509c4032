package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/auth"
	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
)

func newCustomerService(t *testing.T) *CustomerService {
	t.Helper()
	db := openServiceDB(t)
	return NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewCorporateRepository(db),
		zap.NewNop(),
	)
}

func TestCustomerCRUD(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateCustomerRequest{
		Name:  "Khun Nok",
		Phone: "0891234567",
		City:  "Bangkok",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Khun Nok", got.Name)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateCustomerRequest{
		Name:  "Khun Nok",
		Phone: "0899999999",
		City:  "Nonthaburi",
	})
	require.NoError(t, err)
	assert.Equal(t, "0899999999", updated.Phone)
	assert.Equal(t, "Nonthaburi", updated.City)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerCreate_StampsCreatedBy(t *testing.T) {
	svc := newCustomerService(t)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Ploy",
		Role:        domain.RoleSales,
	})

	created, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: "Walk-in"})
	require.NoError(t, err)
	assert.Equal(t, "Ploy", created.CreatedBy)
}

func TestCustomerSearch(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	for _, name := range []string{"Somsak Condo", "Somsri Villa", "Anan House"} {
		_, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}

	matches, err := svc.Search(ctx, "som", 10)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	// Out-of-range limits fall back to the default
	matches, err = svc.Search(ctx, "som", 500)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestCustomerList_Paginates(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: "Customer"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.PageSize)
}

func TestCorporateCustomerCRUD(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	created, err := svc.CreateCorporate(ctx, &domain.CreateCorporateCustomerRequest{
		CompanyName:   "Siam Interiors Co., Ltd.",
		TaxID:         "0105561234567",
		ContactPerson: "Khun Lek",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCorporate(ctx, created.ID, &domain.CreateCorporateCustomerRequest{
		CompanyName:   "Siam Interiors Co., Ltd.",
		TaxID:         "0105561234567",
		ContactPerson: "Khun Noi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Khun Noi", updated.ContactPerson)

	require.NoError(t, svc.DeleteCorporate(ctx, created.ID))

	_, err = svc.GetCorporateByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
