package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"electroyard_back_end/internal/config"
	"electroyard_back_end/internal/database"
)

const (
	// MaxImageSize limite la taille des uploads d'images (5 MB)
	MaxImageSize = 5 * 1024 * 1024
)

var ErrNotAnImage = fmt.Errorf("seules les images sont acceptées")
var ErrImageTooLarge = fmt.Errorf("image trop volumineuse (max %d Mo)", MaxImageSize/(1024*1024))

// UploadImage valide et envoie une image vers MinIO, puis retourne son URL publique.
// Seuls les MIME image/* sont acceptés, 5 MB maximum.
func UploadImage(ctx context.Context, folder string, fileHeader *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	if fileHeader.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Nom unique : <dossier>/<timestamp>-<nom d'origine>
	objectName := fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))

	mc := config.App.MinIO
	_, err = database.MinIO.PutObject(ctx, mc.Bucket, objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if mc.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, mc.Endpoint, mc.Bucket, objectName), nil
}
