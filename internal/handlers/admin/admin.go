package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
)

//
// 👥 GET /api/admin/users — tous les clients (sans mot de passe)
//
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(
		`SELECT user_id, email, first_name, last_name, phone_number,
		        address, city, postal_code, country, role, created_at
		 FROM users`).Iter()

	users := []models.User{}
	var u models.User
	var id gocql.UUID

	for iter.Scan(&id, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.ShippingAddress.Address, &u.ShippingAddress.City,
		&u.ShippingAddress.PostalCode, &u.ShippingAddress.Country,
		&u.Role, &u.CreatedAt) {
		if u.Role == models.RoleUser {
			u.ID = id.String()
			users = append(users, u)
		}
		u = models.User{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, users)
}

//
// 📋 GET /api/admin/orders — toutes les commandes, plus récentes d'abord
//
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrders.Collection("orders")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
