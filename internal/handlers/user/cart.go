package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
)

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	entries, _, err := loadCartEntries(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	view, ok := renderCart(c, entries)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

//
// 🟢 POST /api/cart/items
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité doit être un entier positif"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	product, err := fetchProduct(session, input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// 🔁 Fusionne avec une ligne existante ou ajoute une nouvelle ligne,
	// sous sérialisation par panier (voir mutateCart). La règle de stock
	// est appliquée DANS la transaction, sur la ligne relue.
	entries, err := mutateCart(context.Background(), userID, func(entries []models.CartEntry) ([]models.CartEntry, error) {
		return addCartEntry(entries, product, input.Quantity)
	})

	var oos *outOfStockError
	if errors.As(err, &oos) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Impossible d'ajouter cet article - stock disponible dépassé",
			"available": oos.Available,
			"in_cart":   oos.InCart,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	view, ok := renderCart(c, entries)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    view,
	})
}

//
// ✏️ PUT /api/cart/items/:item_id
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	itemID := c.Param("item_id")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité doit être un entier positif"})
		return
	}

	ctx := context.Background()

	// Retrouve la ligne pour connaître le produit et vérifier le stock
	current, exists, err := loadCartEntries(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable"})
		return
	}

	var productID string
	for _, entry := range current {
		if entry.ItemID == itemID {
			productID = entry.ProductID
			break
		}
	}
	if productID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	product, err := fetchProduct(session, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if product.StockQuantity < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"available": product.StockQuantity,
		})
		return
	}

	entries, err := mutateCart(ctx, userID, func(entries []models.CartEntry) ([]models.CartEntry, error) {
		for i := range entries {
			if entries[i].ItemID == itemID {
				entries[i].Quantity = input.Quantity
				return entries, nil
			}
		}
		return nil, errCartItemNotFound
	})
	if errors.Is(err, errCartItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	view, ok := renderCart(c, entries)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Article mis à jour",
		"cart":    view,
	})
}

//
// ❌ DELETE /api/cart/items/:item_id
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	itemID := c.Param("item_id")

	entries, err := mutateCart(context.Background(), userID, func(entries []models.CartEntry) ([]models.CartEntry, error) {
		for i := range entries {
			if entries[i].ItemID == itemID {
				return append(entries[:i], entries[i+1:]...), nil
			}
		}
		return nil, errCartItemNotFound
	})
	if errors.Is(err, errCartItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	view, ok := renderCart(c, entries)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"cart":    view,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	// Supprime complètement la clé Redis — idempotent
	if err := database.Redis.Del(context.Background(), cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
		"cart":    models.CartView{Items: []models.CartItemView{}},
	})
}

// renderCart construit la vue panier avec les prix catalogue actuels.
// Répond 500 et retourne ok=false en cas d'erreur catalogue.
func renderCart(c *gin.Context, entries []models.CartEntry) (models.CartView, bool) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return models.CartView{}, false
	}

	products, err := cartProducts(session, entries)
	if err != nil && err != gocql.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return models.CartView{}, false
	}

	return buildCartView(entries, products), true
}
