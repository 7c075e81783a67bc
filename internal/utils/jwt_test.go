package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electroyard_back_end/internal/config"
	"electroyard_back_end/internal/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret-de-test", ExpiryHours: 1}
	user := models.User{
		ID:    "3f1c0a9e-0000-1000-8000-000000000000",
		Email: "client@electroyard.be",
		Role:  models.RoleUser,
	}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestParseJWTWrongSecret(t *testing.T) {
	cfg := config.JWTConfig{Secret: "bonne-cle", ExpiryHours: 1}
	token, err := GenerateJWT(models.User{ID: "x", Email: "x@x.be"}, cfg)
	require.NoError(t, err)

	_, err = ParseJWT(token, config.JWTConfig{Secret: "mauvaise-cle"})
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	// Expiration de -1h : le token est déjà périmé à la génération
	cfg := config.JWTConfig{Secret: "secret-de-test", ExpiryHours: -1}
	token, err := GenerateJWT(models.User{ID: "x", Email: "x@x.be"}, cfg)
	require.NoError(t, err)

	_, err = ParseJWT(token, cfg)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("pas.un.token", config.JWTConfig{Secret: "s"})
	assert.Error(t, err)
}
