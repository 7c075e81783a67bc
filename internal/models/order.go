package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de livraison (fulfillment) — machine à états stricte.
const (
	FulfillmentPending    = "pending"
	FulfillmentProcessing = "processing"
	FulfillmentShipped    = "shipped"
	FulfillmentDelivered  = "delivered"
	FulfillmentCancelled  = "cancelled"
)

// Statuts de paiement côté commande, distincts du statut de livraison.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

var ErrInvalidTransition = errors.New("transition de statut invalide")

// fulfillmentTransitions définit les transitions autorisées.
// delivered et cancelled sont terminaux.
var fulfillmentTransitions = map[string][]string{
	FulfillmentPending:    {FulfillmentProcessing, FulfillmentCancelled},
	FulfillmentProcessing: {FulfillmentShipped, FulfillmentCancelled},
	FulfillmentShipped:    {FulfillmentDelivered},
	FulfillmentDelivered:  {},
	FulfillmentCancelled:  {},
}

// IsFulfillmentStatus vérifie qu'un statut appartient au vocabulaire.
func IsFulfillmentStatus(s string) bool {
	_, ok := fulfillmentTransitions[s]
	return ok
}

// CanTransition vérifie qu'un passage from → to est autorisé.
func CanTransition(from, to string) error {
	allowed, ok := fulfillmentTransitions[from]
	if !ok {
		return fmt.Errorf("%w: statut actuel inconnu %q", ErrInvalidTransition, from)
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
}

// OrderItem fige le prix du produit au moment de la commande. Il est
// embarqué dans le document Order : l'insertion Mongo est donc atomique,
// une commande ne peut jamais exister avec des lignes partielles.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	FirstName         string             `bson:"first_name" json:"first_name"`
	LastName          string             `bson:"last_name" json:"last_name"`
	Email             string             `bson:"email" json:"email"`
	PhoneNumber       string             `bson:"phone_number" json:"phone_number"`
	TotalAmount       float64            `bson:"total_amount" json:"total_amount"`
	FulfillmentStatus string             `bson:"fulfillment_status" json:"fulfillment_status"`
	PaymentStatus     string             `bson:"payment_status" json:"payment_status"`
	PaidAt            *time.Time         `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	ShippingAddress   ShippingAddress    `bson:"shipping_address" json:"shipping_address"`
	Items             []OrderItem        `bson:"items" json:"items"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
