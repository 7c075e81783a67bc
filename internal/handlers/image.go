package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"electroyard_back_end/internal/services"
)

// === POST /api/images/upload ===
//
// Upload d'image vers MinIO (admin uniquement). Le champ 'folder' du
// formulaire choisit le dossier du bucket, "products" par défaut.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "products"
	}

	url, err := services.UploadImage(context.Background(), folder, fileHeader)
	if errors.Is(err, services.ErrNotAnImage) || errors.Is(err, services.ErrImageTooLarge) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "✅ Image uploadée",
		"url":     url,
	})
}
