package product

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"electroyard_back_end/internal/cache"
	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
)

// 🟢 Créer une catégorie (admin uniquement)
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	cat.ID = gocql.TimeUUID()
	cat.CreatedAt = time.Now()

	if err := session.Query(
		`INSERT INTO categories (category_id, name, image, created_at) VALUES (?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Image, cat.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie: " + err.Error()})
		return
	}

	cache.DeleteCache("categories:all")

	c.JSON(http.StatusCreated, cat)
}

// 🔵 Lister les catégories (cache Redis 1h)
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:all"

	// Cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Category
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

	iter := session.Query(`SELECT category_id, name, image, created_at FROM categories`).Iter()

	cats := []models.Category{}
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Image, &cat.CreatedAt) {
		cats = append(cats, cat)
		cat = models.Category{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories: " + err.Error()})
		return
	}

	if data, err := json.Marshal(cats); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, cats)
}

// 🔍 Lire une catégorie par son id
func GetCategoryByID(c *gin.Context) {
	categoryUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var cat models.Category
	if err := session.Query(
		`SELECT category_id, name, image, created_at FROM categories WHERE category_id = ?`,
		categoryUUID).Scan(&cat.ID, &cat.Name, &cat.Image, &cat.CreatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	c.JSON(http.StatusOK, cat)
}

// ✏️ Mettre à jour une catégorie (admin uniquement)
// Mise à jour partielle : seuls les champs fournis sont modifiés.
func UpdateCategory(c *gin.Context) {
	categoryUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de catégorie invalide"})
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	query, values, ok := categoryUpdateQuery(categoryUUID, input.Name, input.Image)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune donnée à mettre à jour"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// La catégorie doit exister : un UPDATE CQL sur une ligne absente en crée une
	var name string
	if err := session.Query(`SELECT name FROM categories WHERE category_id = ?`, categoryUUID).
		Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	if err := session.Query(query, values...).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie: " + err.Error()})
		return
	}

	cache.DeleteCache("categories:all")

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie mise à jour avec succès"})
}

// categoryUpdateQuery assemble l'UPDATE partiel. ok=false quand aucun
// champ n'est fourni.
func categoryUpdateQuery(id gocql.UUID, name, image *string) (string, []interface{}, bool) {
	updates := []string{}
	values := []interface{}{}

	if name != nil {
		updates = append(updates, "name = ?")
		values = append(values, *name)
	}
	if image != nil {
		updates = append(updates, "image = ?")
		values = append(values, *image)
	}

	if len(updates) == 0 {
		return "", nil, false
	}

	query := "UPDATE categories SET " + updates[0]
	for i := 1; i < len(updates); i++ {
		query += ", " + updates[i]
	}
	query += " WHERE category_id = ?"
	values = append(values, id)

	return query, values, true
}

// 🔴 Supprimer une catégorie (admin uniquement)
func DeleteCategory(c *gin.Context) {
	categoryUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM categories WHERE category_id = ?`, categoryUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie: " + err.Error()})
		return
	}

	cache.DeleteCache("categories:all")

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
