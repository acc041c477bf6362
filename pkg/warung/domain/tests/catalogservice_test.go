package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
)

func setupCatalog(t *testing.T) (service.CatalogService, *mockProductRepository, *mockCategoryRepository, *mockEventDispatcher) {
	products := newMockProductRepository()
	categories := newMockCategoryRepository()
	dispatcher := &mockEventDispatcher{}
	catalog := service.NewCatalogService(products, categories, dispatcher)
	return catalog, products, categories, dispatcher
}

func TestAddProduct(t *testing.T) {
	catalog, products, _, dispatcher := setupCatalog(t)

	t.Run("Success", func(t *testing.T) {
		product, err := catalog.AddProduct("8996001600647", "Indomie Goreng", "Makanan Instan", "PT Indofood", 2500, 50, -1)

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Indomie Goreng", product.Name)
		assert.Equal(t, 50, product.Stock)
		assert.Equal(t, model.DefaultMinStock, product.MinStock)

		saved, err := products.FindByBarcode("8996001600647")
		require.NoError(t, err)
		assert.Equal(t, product.ID, saved.ID)

		require.Len(t, dispatcher.events, 1)
		_, ok := dispatcher.events[0].(model.ProductCreated)
		assert.True(t, ok)
	})

	t.Run("Explicit zero threshold is kept", func(t *testing.T) {
		product, err := catalog.AddProduct("8990000000001", "Kerupuk Curah", "Snack", "", 500, 2, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, product.MinStock)
		// With the warning disabled, 2 in stock is not low.
		assert.False(t, product.IsLowStock())
	})

	t.Run("Fail on duplicate barcode", func(t *testing.T) {
		dispatcher.Reset()
		before, _ := products.List()

		_, err := catalog.AddProduct("8996001600647", "Indomie Kuah", "Makanan Instan", "PT Indofood", 2700, 30, 5)

		assert.ErrorIs(t, err, model.ErrBarcodeTaken)
		after, _ := products.List()
		assert.Len(t, after, len(before))
		assert.Empty(t, dispatcher.events)
	})

	t.Run("Fail on negative price", func(t *testing.T) {
		_, err := catalog.AddProduct("123", "Broken", "", "", -1, 0, 0)
		assert.ErrorIs(t, err, service.ErrInvalidPrice)
	})

	t.Run("Fail on empty barcode", func(t *testing.T) {
		_, err := catalog.AddProduct("   ", "Broken", "", "", 100, 0, 0)
		assert.ErrorIs(t, err, service.ErrEmptyBarcode)
	})
}

func TestUpdateProduct(t *testing.T) {
	catalog, products, _, _ := setupCatalog(t)
	first, _ := catalog.AddProduct("111", "Aqua 600ml", "Minuman", "PT Aqua", 3000, 100, 10)
	second, _ := catalog.AddProduct("222", "Chitato", "Snack", "PT Indofood", 12000, 25, 5)

	t.Run("Merges only the given fields", func(t *testing.T) {
		newPrice := int64(3500)
		err := catalog.UpdateProduct(first.ID, service.ProductPatch{Price: &newPrice})

		require.NoError(t, err)
		updated, _ := products.Find(first.ID)
		assert.Equal(t, int64(3500), updated.Price)
		assert.Equal(t, "Aqua 600ml", updated.Name)
		assert.Equal(t, 100, updated.Stock)
	})

	t.Run("Fail on barcode collision with another product", func(t *testing.T) {
		collision := "111"
		err := catalog.UpdateProduct(second.ID, service.ProductPatch{Barcode: &collision})

		assert.ErrorIs(t, err, model.ErrBarcodeTaken)
		unchanged, _ := products.Find(second.ID)
		assert.Equal(t, "222", unchanged.Barcode)
	})

	t.Run("Own barcode is not a collision", func(t *testing.T) {
		same := "222"
		err := catalog.UpdateProduct(second.ID, service.ProductPatch{Barcode: &same})
		assert.NoError(t, err)
	})

	t.Run("Fail on unknown product", func(t *testing.T) {
		id, _ := products.NextID()
		err := catalog.UpdateProduct(id, service.ProductPatch{})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	catalog, products, _, _ := setupCatalog(t)
	product, _ := catalog.AddProduct("333", "Beras Ramos 5kg", "Bahan Pokok", "PT Beras Ramos", 65000, 15, 3)

	require.NoError(t, catalog.DeleteProduct(product.ID))
	_, err := products.Find(product.ID)
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, catalog.DeleteProduct(product.ID))
}

func TestAdjustStock(t *testing.T) {
	catalog, products, _, dispatcher := setupCatalog(t)
	product, _ := catalog.AddProduct("444", "Minyak Goreng 2L", "Bahan Pokok", "PT Salim Ivomas", 32000, 8, 5)

	t.Run("Restock", func(t *testing.T) {
		dispatcher.Reset()
		require.NoError(t, catalog.AdjustStock(product.ID, 12))

		updated, _ := products.Find(product.ID)
		assert.Equal(t, 20, updated.Stock)

		require.Len(t, dispatcher.events, 1)
		event := dispatcher.events[0].(model.ProductStockChanged)
		assert.Equal(t, 12, event.ChangeAmount)
		assert.Equal(t, 20, event.NewQuantity)
	})

	t.Run("Fail when result would go negative", func(t *testing.T) {
		err := catalog.AdjustStock(product.ID, -25)

		assert.ErrorIs(t, err, model.ErrInsufficientStock)
		unchanged, _ := products.Find(product.ID)
		assert.Equal(t, 20, unchanged.Stock)
	})

	t.Run("Decrement down to zero is allowed", func(t *testing.T) {
		require.NoError(t, catalog.AdjustStock(product.ID, -20))
		updated, _ := products.Find(product.ID)
		assert.Equal(t, 0, updated.Stock)
	})
}

func TestSetStock(t *testing.T) {
	catalog, products, _, _ := setupCatalog(t)
	product, _ := catalog.AddProduct("555", "Teh Botol", "Minuman", "PT Sinar Sosro", 4000, 10, 5)

	require.NoError(t, catalog.SetStock(product.ID, 42))
	updated, _ := products.Find(product.ID)
	assert.Equal(t, 42, updated.Stock)

	assert.ErrorIs(t, catalog.SetStock(product.ID, -1), service.ErrInvalidStock)
}

func TestStockQueries(t *testing.T) {
	catalog, _, _, _ := setupCatalog(t)
	catalog.AddProduct("a", "Plenty", "", "", 1000, 50, 5)
	low, _ := catalog.AddProduct("b", "Running Out", "", "", 2000, 3, 5)
	empty, _ := catalog.AddProduct("c", "Gone", "", "", 3000, 0, 5)

	lowStock, err := catalog.LowStockProducts()
	require.NoError(t, err)
	require.Len(t, lowStock, 1)
	assert.Equal(t, low.ID, lowStock[0].ID)

	outOfStock, err := catalog.OutOfStockProducts()
	require.NoError(t, err)
	require.Len(t, outOfStock, 1)
	assert.Equal(t, empty.ID, outOfStock[0].ID)

	value, err := catalog.InventoryValue()
	require.NoError(t, err)
	assert.Equal(t, int64(1000*50+2000*3), value)
}

func TestAddCategory(t *testing.T) {
	catalog, _, categories, _ := setupCatalog(t)

	t.Run("Trims the name", func(t *testing.T) {
		category, err := catalog.AddCategory("  Snack  ")
		require.NoError(t, err)
		assert.Equal(t, "Snack", category.Name)
	})

	t.Run("Fail on empty name", func(t *testing.T) {
		_, err := catalog.AddCategory("   ")
		assert.ErrorIs(t, err, service.ErrEmptyCategoryName)
	})

	t.Run("Fail on case-insensitive duplicate", func(t *testing.T) {
		_, err := catalog.AddCategory("snack")
		assert.ErrorIs(t, err, model.ErrCategoryTaken)

		all, _ := categories.List()
		assert.Len(t, all, 1)
	})
}

func TestRenameCategory(t *testing.T) {
	catalog, _, categories, _ := setupCatalog(t)
	first, _ := catalog.AddCategory("Minuman")
	second, _ := catalog.AddCategory("Snack")

	require.NoError(t, catalog.RenameCategory(second.ID, "Makanan Ringan"))
	renamed, _ := categories.Find(second.ID)
	assert.Equal(t, "Makanan Ringan", renamed.Name)

	assert.ErrorIs(t, catalog.RenameCategory(second.ID, "minuman"), model.ErrCategoryTaken)
	assert.NoError(t, catalog.DeleteCategory(first.ID))
	assert.NoError(t, catalog.DeleteCategory(first.ID))
}

func TestSeedDefaultData(t *testing.T) {
	catalog, _, _, _ := setupCatalog(t)

	require.NoError(t, service.SeedDefaultData(catalog))
	products, _ := catalog.Products()
	categories, _ := catalog.Categories()
	assert.Len(t, products, 5)
	assert.Len(t, categories, 7)

	// A second run must not duplicate anything.
	require.NoError(t, service.SeedDefaultData(catalog))
	products, _ = catalog.Products()
	categories, _ = catalog.Categories()
	assert.Len(t, products, 5)
	assert.Len(t, categories, 7)
}
