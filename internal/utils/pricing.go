package utils

import "math"

// Round2 arrondit un montant à 2 décimales (centimes).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DiscountedPrice applique la remise produit au prix catalogue,
// arrondie au centime. Sans remise, le prix catalogue est retourné tel quel.
func DiscountedPrice(price, discountPercentage float64) float64 {
	if discountPercentage > 0 {
		return Round2(price * (1 - discountPercentage/100))
	}
	return price
}

// MinorUnits convertit un montant en unités mineures (centimes) pour Stripe.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
