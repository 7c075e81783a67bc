package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Disponibilité d'un produit
const (
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
)

type Product struct {
	ID                 gocql.UUID `json:"id" db:"product_id"`
	ProductCode        string     `json:"product_code" db:"product_code"`
	Name               string     `json:"name" db:"name"`
	Description        string     `json:"description" db:"description"`
	Price              float64    `json:"price" db:"price"`
	Category           string     `json:"category" db:"category"`
	StockQuantity      int        `json:"stock_quantity" db:"stock_quantity"`
	Brand              string     `json:"brand,omitempty" db:"brand"`
	Country            string     `json:"country,omitempty" db:"country"`
	Weight             float64    `json:"weight,omitempty" db:"weight"`
	DiscountPercentage float64    `json:"discount_percentage" db:"discount_percentage"`
	Image              string     `json:"image,omitempty" db:"image"`
	Ratings            float64    `json:"ratings" db:"ratings"`
	Availability       string     `json:"availability" db:"availability"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// ProductSummary est la projection produit renvoyée dans les vues panier.
type ProductSummary struct {
	ProductID          string  `json:"product_id"`
	ProductCode        string  `json:"product_code"`
	Name               string  `json:"name"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountedPrice    float64 `json:"discounted_price"`
	Image              string  `json:"image,omitempty"`
	Category           string  `json:"category"`
	Availability       string  `json:"availability"`
}
