package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//
// 📦 POST /api/orders — crée une commande à partir du panier
//
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		FirstName       string                 `json:"first_name"`
		LastName        string                 `json:"last_name"`
		Email           string                 `json:"email"`
		PhoneNumber     string                 `json:"phone_number"`
		ShippingAddress models.ShippingAddress `json:"shipping_address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez renseigner toutes les coordonnées client"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// ✅ 1. Récupérer le panier depuis Redis
	entries, exists, err := loadCartEntries(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable"})
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// ✅ 2. Relire chaque produit au prix catalogue ACTUEL
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	products, err := cartProducts(session, entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	items := make([]models.OrderItem, 0, len(entries))
	for _, entry := range entries {
		p, ok := products[entry.ProductID]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + entry.ProductID})
			return
		}
		// Snapshot : le prix est figé ICI, les changements de prix
		// ultérieurs ne toucheront jamais cette commande
		items = append(items, models.OrderItem{
			ProductID: entry.ProductID,
			Name:      p.Name,
			Quantity:  entry.Quantity,
			Price:     p.Price,
		})
	}

	order := models.Order{
		ID:                primitive.NewObjectID(),
		UserID:            userID,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		PhoneNumber:       input.PhoneNumber,
		TotalAmount:       orderTotal(entries, products),
		FulfillmentStatus: models.FulfillmentPending,
		PaymentStatus:     models.PaymentUnpaid,
		ShippingAddress:   input.ShippingAddress, // copie figée, pas une référence
		Items:             items,
		CreatedAt:         time.Now(),
	}

	// ✅ 3. Insertion atomique : les lignes sont embarquées dans le document,
	// une commande ne peut pas exister avec des lignes partielles
	collection := database.MongoOrders.Collection("orders")
	if _, err := collection.InsertOne(ctx, order); err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// ✅ 4. Vider le panier APRÈS la commande. Un crash entre les deux
	// laisse une commande durable + un panier périmé : acceptable.
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		log.Printf("⚠️ Panier non vidé pour %s: %v", userID, err)
	} else {
		log.Printf("🧹 Panier vidé pour %s", userID)
	}

	log.Printf("✅ Commande %s créée (%.2f€, %d articles) pour %s",
		order.ID.Hex(), order.TotalAmount, len(items), input.Email)

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
		"items": items,
	})
}

//
// 📄 GET /api/orders — commandes de l'utilisateur connecté
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrders.Collection("orders")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("❌ Erreur décodage commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🔍 GET /api/orders/:id — une commande précise
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Les admins voient toutes les commandes, un client uniquement les siennes
	filter := bson.M{"_id": orderID}
	if c.GetString("role") != models.RoleAdmin {
		filter["user_id"] = userID
	}

	var order models.Order
	if err := database.MongoOrders.Collection("orders").FindOne(ctx, filter).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": order.Items,
	})
}
