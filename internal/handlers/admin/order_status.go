package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
	"electroyard_back_end/internal/utils"
)

//
// 🚚 PUT /api/orders/:id/status — avance le statut de livraison
//
// La machine à états est stricte : pending → processing → shipped →
// delivered, cancelled accessible depuis pending et processing seulement.
// Toute autre transition est refusée.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	var input struct {
		OrderStatus string `json:"order_status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if !models.IsFulfillmentStatus(input.OrderStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.OrderStatus})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrders.Collection("orders")

	var order models.Order
	if err := collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if err := models.CanTransition(order.FulfillmentStatus, input.OrderStatus); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition refusée: " + order.FulfillmentStatus + " → " + input.OrderStatus,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}

	// Mise à jour conditionnelle : le filtre reprend le statut qui a passé
	// la machine à états. Si un autre writer est passé entre la lecture et
	// l'écriture, MatchedCount vaut 0 et la transition est refusée.
	res, err := collection.UpdateOne(ctx,
		statusTransitionFilter(orderID, order.FulfillmentStatus),
		bson.M{"$set": bson.M{"fulfillment_status": input.OrderStatus}})
	if err != nil {
		log.Println("❌ Erreur mise à jour statut:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Le statut de la commande a changé entre-temps, réessayez"})
		return
	}

	order.FulfillmentStatus = input.OrderStatus

	// 📧 Notification client en fire-and-forget : un échec d'envoi est
	// loggé mais ne fait JAMAIS échouer le changement de statut
	if utils.HasStatusEmail(input.OrderStatus) {
		go func(order models.Order, status string) {
			subject, html := utils.GenerateOrderStatusHTML(order, status)
			if err := utils.SendEmail(order.Email, subject, html); err != nil {
				log.Printf("❌ Erreur envoi e-mail statut commande %s: %v", order.ID.Hex(), err)
			} else {
				log.Printf("📧 E-mail '%s' envoyé à %s", status, order.Email)
			}
		}(order, input.OrderStatus)
	}

	c.JSON(http.StatusOK, order)
}

// statusTransitionFilter cible la commande ET son statut courant, pour que
// deux transitions concurrentes ne puissent pas passer toutes les deux.
func statusTransitionFilter(orderID primitive.ObjectID, currentStatus string) bson.M {
	return bson.M{
		"_id":                orderID,
		"fulfillment_status": currentStatus,
	}
}
