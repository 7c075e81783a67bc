package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("MonSuperMotDePasse123!")
	require.NoError(t, err)
	assert.True(t, IsArgon2Hash(hash))
	assert.NotContains(t, hash, "MonSuperMotDePasse123!")

	ok, err := VerifyPassword("MonSuperMotDePasse123!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais-mot-de-passe", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUnique(t *testing.T) {
	// Deux hashs du même mot de passe doivent différer (sel aléatoire)
	h1, err := HashPassword("pareil")
	require.NoError(t, err)
	h2, err := HashPassword("pareil")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	ok, err := VerifyPassword("peu importe", "pas-un-hash-argon2")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestIsArgon2Hash(t *testing.T) {
	assert.False(t, IsArgon2Hash(""))
	assert.False(t, IsArgon2Hash("$2a$10$bcryptstyle"))
}
