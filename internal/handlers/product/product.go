package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"electroyard_back_end/internal/cache"
	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
	"electroyard_back_end/internal/services"
)

const productColumns = `product_id, product_code, name, description, price, category, stock_quantity,
	brand, country, weight, discount_percentage, image, ratings, availability, created_at, updated_at`

func scanProduct(scan func(...interface{}) error) (models.Product, error) {
	var p models.Product
	err := scan(
		&p.ID, &p.ProductCode, &p.Name, &p.Description, &p.Price, &p.Category, &p.StockQuantity,
		&p.Brand, &p.Country, &p.Weight, &p.DiscountPercentage, &p.Image, &p.Ratings, &p.Availability,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func allProducts(session *gocql.Session) ([]models.Product, error) {
	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(
		&p.ID, &p.ProductCode, &p.Name, &p.Description, &p.Price, &p.Category, &p.StockQuantity,
		&p.Brand, &p.Country, &p.Weight, &p.DiscountPercentage, &p.Image, &p.Ratings, &p.Availability,
		&p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct crée un produit (admin uniquement)
func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.ProductCode == "" || p.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name', 'product_code' et 'category' sont obligatoires"})
		return
	}
	if p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
		return
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La remise doit être comprise entre 0 et 100"})
		return
	}
	if p.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// ✅ Génère un nouvel UUID pour le produit
	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Availability == "" {
		if p.StockQuantity > 0 {
			p.Availability = models.AvailabilityInStock
		} else {
			p.Availability = models.AvailabilityOutOfStock
		}
	}

	if err := session.Query(
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProductCode, p.Name, p.Description, p.Price, p.Category, p.StockQuantity,
		p.Brand, p.Country, p.Weight, p.DiscountPercentage, p.Image, p.Ratings, p.Availability,
		p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// ✅ Invalide le cache catalogue
	cache.DeleteCache("products:all")

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// GetAllProducts liste tout le catalogue (cache Redis 1h)
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:all"

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	products, err := allProducts(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID renvoie un produit par son id
func GetProductByID(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, err := scanProduct(session.Query(
		`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productUUID).Scan)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProduct met à jour un produit (admin uniquement)
func UpdateProduct(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, err := scanProduct(session.Query(
		`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productUUID).Scan)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}

	// Le bind écrase les champs fournis, les autres gardent leur valeur actuelle
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
		return
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La remise doit être comprise entre 0 et 100"})
		return
	}
	if p.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	p.ID = productUUID
	p.UpdatedAt = time.Now()

	if err := session.Query(
		`UPDATE products SET product_code = ?, name = ?, description = ?, price = ?, category = ?,
		        stock_quantity = ?, brand = ?, country = ?, weight = ?, discount_percentage = ?,
		        image = ?, ratings = ?, availability = ?, updated_at = ?
		 WHERE product_id = ?`,
		p.ProductCode, p.Name, p.Description, p.Price, p.Category,
		p.StockQuantity, p.Brand, p.Country, p.Weight, p.DiscountPercentage,
		p.Image, p.Ratings, p.Availability, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	cache.DeleteCache("products:all")
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime un produit (admin uniquement)
func DeleteProduct(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, productUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit: " + err.Error()})
		return
	}

	cache.DeleteCache("products:all")
	go services.RemoveProductFromIndex(productUUID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// GetLatestProducts renvoie les 8 produits les plus récents
func GetLatestProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	products, err := allProducts(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if len(products) > 8 {
		products = products[:8]
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// GetDiscountedProducts renvoie les meilleures promos (remise > 0, max 8)
func GetDiscountedProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	products, err := allProducts(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	discounted := []models.Product{}
	for _, p := range products {
		if p.DiscountPercentage > 0 {
			discounted = append(discounted, p)
		}
	}

	sort.Slice(discounted, func(i, j int) bool {
		return discounted[i].DiscountPercentage > discounted[j].DiscountPercentage
	})
	if len(discounted) > 8 {
		discounted = discounted[:8]
	}

	c.JSON(http.StatusOK, discounted)
}

// SearchProducts recherche dans le catalogue
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}
	if err != nil {
		log.Println("⚠️ Elasticsearch indisponible, fallback ScyllaDB:", err)
	}

	// 🔁 2️⃣ Fallback ScyllaDB si ES vide (scan complet - non optimal pour production)
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Note: ScyllaDB ne supporte pas les recherches LIKE/regex natives.
	// Cette approche charge tous les produits et filtre en mémoire.
	products, err := allProducts(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche: " + err.Error()})
		return
	}

	matches := []models.Product{}
	for _, p := range products {
		if containsIgnoreCase(p.Name, query) ||
			containsIgnoreCase(p.Description, query) ||
			containsIgnoreCase(p.Brand, query) ||
			containsIgnoreCase(p.Category, query) {
			matches = append(matches, p)
		}
	}

	c.JSON(http.StatusOK, matches)
}

// Helper pour recherche insensible à la casse
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// GetProductsByCategory renvoie les produits d'une catégorie (par libellé)
func GetProductsByCategory(c *gin.Context) {
	category := c.Param("name")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie manquante"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	products, err := allProducts(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	filtered := []models.Product{}
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}

	c.JSON(http.StatusOK, filtered)
}
