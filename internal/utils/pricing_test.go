package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.567))
	assert.Equal(t, 10.56, Round2(10.563))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.0, Round2(100))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
}

func TestDiscountedPrice(t *testing.T) {
	// 20% de remise sur 100 → 80
	assert.Equal(t, 80.0, DiscountedPrice(100, 20))
	// Pas de remise → prix inchangé
	assert.Equal(t, 49.99, DiscountedPrice(49.99, 0))
	// Remise totale → gratuit
	assert.Equal(t, 0.0, DiscountedPrice(100, 100))
	// Arrondi au centime : 19.99 à -15% = 16.9915 → 16.99
	assert.Equal(t, 16.99, DiscountedPrice(19.99, 15))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(25000), MinorUnits(250.00))
	assert.Equal(t, int64(1999), MinorUnits(19.99))
	assert.Equal(t, int64(0), MinorUnits(0))
	// 0.1+0.2 en flottant ≠ 0.3 exactement : MinorUnits doit arrondir
	assert.Equal(t, int64(30), MinorUnits(0.1+0.2))
}
