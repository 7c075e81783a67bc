package user

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electroyard_back_end/internal/models"
)

func testProduct(t *testing.T, price, discount float64) models.Product {
	t.Helper()
	id, err := gocql.RandomUUID()
	require.NoError(t, err)
	return models.Product{
		ID:                 id,
		ProductCode:        "EY-TEST",
		Name:               "Produit test",
		Price:              price,
		DiscountPercentage: discount,
		Category:           "informatique",
		StockQuantity:      10,
		Availability:       models.AvailabilityInStock,
	}
}

func TestBuildCartView(t *testing.T) {
	// A : 100 € avec -20% × 2 → 160.00 ; B : 50 € sans remise × 1 → 50.00
	a := testProduct(t, 100, 20)
	b := testProduct(t, 50, 0)

	entries := []models.CartEntry{
		{ItemID: "item-a", ProductID: a.ID.String(), Quantity: 2},
		{ItemID: "item-b", ProductID: b.ID.String(), Quantity: 1},
	}
	products := map[string]models.Product{
		a.ID.String(): a,
		b.ID.String(): b,
	}

	view := buildCartView(entries, products)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "item-a", view.Items[0].ItemID)
	assert.Equal(t, 80.0, view.Items[0].Product.DiscountedPrice)
	assert.Equal(t, 160.0, view.Items[0].ItemTotal)
	assert.Equal(t, 50.0, view.Items[1].ItemTotal)
	assert.Equal(t, 210.0, view.Total)
	assert.Equal(t, 3, view.ItemCount)
}

func TestBuildCartViewSkipsVanishedProducts(t *testing.T) {
	a := testProduct(t, 100, 0)

	entries := []models.CartEntry{
		{ItemID: "item-a", ProductID: a.ID.String(), Quantity: 1},
		{ItemID: "item-fantome", ProductID: "00000000-0000-0000-0000-000000000000", Quantity: 3},
	}
	products := map[string]models.Product{a.ID.String(): a}

	view := buildCartView(entries, products)

	// Le produit disparu du catalogue n'apparaît ni dans les lignes ni dans les totaux
	require.Len(t, view.Items, 1)
	assert.Equal(t, 100.0, view.Total)
	assert.Equal(t, 1, view.ItemCount)
}

func TestBuildCartViewEmpty(t *testing.T) {
	view := buildCartView(nil, nil)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.Total)
	assert.Equal(t, 0, view.ItemCount)
}

func TestBuildCartViewRounding(t *testing.T) {
	// 19.99 à -15% = 16.9915 → 16.99 l'unité, ×3 = 50.97
	a := testProduct(t, 19.99, 15)
	entries := []models.CartEntry{{ItemID: "i", ProductID: a.ID.String(), Quantity: 3}}
	view := buildCartView(entries, map[string]models.Product{a.ID.String(): a})

	require.Len(t, view.Items, 1)
	assert.Equal(t, 16.99, view.Items[0].Product.DiscountedPrice)
	assert.Equal(t, 50.97, view.Items[0].ItemTotal)
}

func TestOrderTotalUsesFullPrice(t *testing.T) {
	// La commande fige le prix catalogue PLEIN, remise ignorée :
	// 100×2 + 50×1 = 250, alors que la vue panier affiche 210
	a := testProduct(t, 100, 20)
	b := testProduct(t, 50, 0)

	entries := []models.CartEntry{
		{ItemID: "item-a", ProductID: a.ID.String(), Quantity: 2},
		{ItemID: "item-b", ProductID: b.ID.String(), Quantity: 1},
	}
	products := map[string]models.Product{
		a.ID.String(): a,
		b.ID.String(): b,
	}

	assert.Equal(t, 250.0, orderTotal(entries, products))
	assert.Equal(t, 210.0, buildCartView(entries, products).Total)
}

func TestAddCartEntryNewLine(t *testing.T) {
	p := testProduct(t, 100, 0)

	entries, err := addCartEntry(nil, p, 2)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ItemID)
	assert.Equal(t, p.ID.String(), entries[0].ProductID)
	assert.Equal(t, 2, entries[0].Quantity)
}

func TestAddCartEntryMergesExistingLine(t *testing.T) {
	p := testProduct(t, 100, 0) // stock 10
	existing := []models.CartEntry{{ItemID: "item-a", ProductID: p.ID.String(), Quantity: 3}}

	entries, err := addCartEntry(existing, p, 4)
	require.NoError(t, err)

	// Pas de nouvelle ligne : la quantité est cumulée sur la ligne existante
	require.Len(t, entries, 1)
	assert.Equal(t, "item-a", entries[0].ItemID)
	assert.Equal(t, 7, entries[0].Quantity)
}

func TestAddCartEntryRejectsMergeOverStock(t *testing.T) {
	p := testProduct(t, 100, 0) // stock 10
	existing := []models.CartEntry{{ItemID: "item-a", ProductID: p.ID.String(), Quantity: 8}}

	// 8 déjà au panier + 3 demandés > 10 en stock
	_, err := addCartEntry(existing, p, 3)

	var oos *outOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 10, oos.Available)
	assert.Equal(t, 8, oos.InCart)
}

func TestAddCartEntryExactStockAllowed(t *testing.T) {
	p := testProduct(t, 100, 0) // stock 10
	existing := []models.CartEntry{{ItemID: "item-a", ProductID: p.ID.String(), Quantity: 8}}

	entries, err := addCartEntry(existing, p, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, entries[0].Quantity)
}

func TestAddCartEntryRejectsUnavailableProduct(t *testing.T) {
	p := testProduct(t, 100, 0)
	p.Availability = models.AvailabilityOutOfStock

	_, err := addCartEntry(nil, p, 1)

	var oos *outOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 0, oos.InCart)
}

func TestOutOfStockError(t *testing.T) {
	err := outOfStockError{Available: 2, InCart: 5}
	assert.Contains(t, err.Error(), "stock insuffisant")
}
