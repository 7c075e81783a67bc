package payement

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
	"electroyard_back_end/internal/utils"
)

//
// 💳 POST /api/payments/create-payment-intent
//
// Crée un PaymentIntent Stripe pour une commande. La confirmation carte se
// fait entièrement côté client, directement auprès de Stripe : ce serveur
// ne voit jamais de données de carte, il ne renvoie que le client_secret.
func CreatePaymentIntent(c *gin.Context) {
	var input struct {
		OrderID string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'order_id' est requis"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(input.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := database.MongoOrders.Collection("orders").
		FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Montant en unités mineures (centimes)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(utils.MinorUnits(order.TotalAmount)),
		Currency: stripe.String("usd"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
		Metadata: map[string]string{
			"order_id": order.ID.Hex(),
			"user_id":  order.UserID,
			"email":    order.Email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		// Ici l'échec REMONTE : le client doit savoir que le checkout a échoué
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur création paiement"})
		return
	}

	// Le statut Stripe initial est repris tel quel, sans traduction
	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		OrderID:       order.ID,
		PaymentMethod: "stripe",
		PaymentStatus: string(intent.Status),
		TransactionID: intent.ID,
		CreatedAt:     time.Now(),
	}

	if _, err := database.MongoOrders.Collection("payments").InsertOne(ctx, payment); err != nil {
		log.Println("❌ Erreur insertion paiement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement paiement"})
		return
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f) pour commande %s",
		intent.ID, order.TotalAmount, order.ID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
	})
}

//
// 🔍 GET /api/payments/:order_id
//
// Retourne la tentative de paiement la plus récente pour une commande.
func GetPaymentDetails(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paiement introuvable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var payment models.Payment
	if err := database.MongoOrders.Collection("payments").
		FindOne(ctx, bson.M{"order_id": orderID}, opts).Decode(&payment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paiement introuvable"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

//
// ✅ PUT /api/orders/:id/payment — confirme le paiement d'une commande
//
// Volontairement non protégé contre le double appel : re-marquer une
// commande payée réussit et re-date simplement paid_at.
func MarkOrderPaid(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	res, err := database.MongoOrders.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"payment_status": models.PaymentPaid,
			"paid_at":        now,
		}})
	if err != nil {
		log.Println("❌ Erreur confirmation paiement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur confirmation paiement"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	log.Printf("✅ Commande %s marquée payée", orderID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Paiement confirmé, commande mise à jour"})
}
