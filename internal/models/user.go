package models

import "time"

// Rôles utilisateur
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type User struct {
	ID              string          `json:"user_id"`
	Email           string          `json:"email"`
	Password        string          `json:"-"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	PhoneNumber     string          `json:"phone_number,omitempty"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Role            string          `json:"role,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
