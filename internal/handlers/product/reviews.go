package product

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"electroyard_back_end/internal/cache"
	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
)

// AddReview ajoute un avis sur un produit et recalcule sa note moyenne
func AddReview(c *gin.Context) {
	productUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produit invalide"})
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Rating < 0 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La note doit être comprise entre 0 et 5"})
		return
	}

	userID := c.GetString("user_id")
	userEmail := c.GetString("email")

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Le produit doit exister
	var name string
	if err := session.Query(`SELECT name FROM products WHERE product_id = ?`, productUUID).
		Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: productUUID,
		UserID:    userID,
		UserName:  userEmail,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if err := session.Query(
		`INSERT INTO reviews (product_id, review_id, user_id, user_name, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ProductID, review.ID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis: " + err.Error()})
		return
	}

	// ✅ Recalcule la note moyenne du produit
	iter := session.Query(`SELECT rating FROM reviews WHERE product_id = ?`, productUUID).Iter()
	var rating, sum, count int
	for iter.Scan(&rating) {
		sum += rating
		count++
	}
	if err := iter.Close(); err == nil && count > 0 {
		average := float64(sum) / float64(count)
		session.Query(`UPDATE products SET ratings = ? WHERE product_id = ?`, average, productUUID).Exec()
		cache.DeleteCache("products:all")
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews liste les avis d'un produit (du plus récent au plus ancien)
func GetReviews(c *gin.Context) {
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

	iter := session.Query(
		`SELECT product_id, review_id, user_id, user_name, rating, comment, created_at
		 FROM reviews WHERE product_id = ?`, productUUID).Iter()

	reviews := []models.Review{}
	var r models.Review
	for iter.Scan(&r.ProductID, &r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
		r = models.Review{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
