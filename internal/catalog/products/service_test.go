package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellhub/sellhub/internal/platform/httpx"
	"github.com/sellhub/sellhub/internal/shared"
)

type mockProductRepo struct {
	products map[int64]Product
	nextID   int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[int64]Product)}
}

func (m *mockProductRepo) List(ctx context.Context, filters shared.ListFilters) ([]ProductWithRefs, int, error) {
	out := make([]ProductWithRefs, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, ProductWithRefs{Product: p})
	}
	return out, len(out), nil
}

func (m *mockProductRepo) Get(ctx context.Context, id int64) (ProductWithRefs, error) {
	p, ok := m.products[id]
	if !ok {
		return ProductWithRefs{}, httpx.ErrNotFound
	}
	return ProductWithRefs{Product: p}, nil
}

func (m *mockProductRepo) Create(ctx context.Context, product Product) (Product, error) {
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = product
	return product, nil
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, product Product) error {
	existing, ok := m.products[id]
	if !ok {
		return httpx.ErrNotFound
	}
	product.ID = id
	product.SKU = existing.SKU
	m.products[id] = product
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func validProductForm() ProductForm {
	return ProductForm{
		Name:       "Mechanical Keyboard",
		CategoryID: 1,
		SellerID:   10,
		Price:      149.99,
		Stock:      25,
		IsActive:   true,
	}
}

func TestCreateAssignsSKU(t *testing.T) {
	svc := NewService(newMockProductRepo())

	product, err := svc.Create(context.Background(), validProductForm())
	require.NoError(t, err)
	_, parseErr := uuid.Parse(product.SKU)
	assert.NoError(t, parseErr)
}

func TestCreateValidatesForm(t *testing.T) {
	svc := NewService(newMockProductRepo())
	ctx := context.Background()

	form := validProductForm()
	form.Name = ""
	_, err := svc.Create(ctx, form)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	form = validProductForm()
	form.SellerID = 0
	_, err = svc.Create(ctx, form)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	form = validProductForm()
	form.Price = -1
	_, err = svc.Create(ctx, form)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	form = validProductForm()
	bad := "not-a-url"
	form.ImageURL = &bad
	_, err = svc.Create(ctx, form)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateAllowsZeroPrice(t *testing.T) {
	svc := NewService(newMockProductRepo())
	form := validProductForm()
	form.Price = 0

	_, err := svc.Create(context.Background(), form)
	assert.NoError(t, err)
}

func TestUpdateKeepsSKU(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validProductForm())
	require.NoError(t, err)

	form := validProductForm()
	form.Name = "Renamed Keyboard"
	require.NoError(t, svc.Update(ctx, created.ID, form))

	updated, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SKU, updated.SKU)
	assert.Equal(t, "Renamed Keyboard", updated.Name)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := NewService(newMockProductRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), 7), httpx.ErrNotFound)
}
