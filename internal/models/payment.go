package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment trace une tentative de paiement Stripe pour une commande.
// Plusieurs tentatives par commande sont possibles (échec puis retry),
// la plus récente fait foi.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       primitive.ObjectID `bson:"order_id" json:"order_id"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	PaidAt        *time.Time         `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
