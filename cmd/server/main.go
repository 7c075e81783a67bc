package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"electroyard_back_end/internal/config"
	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/routes"
)

func main() {
	config.Load()

	stripe.Key = config.App.Stripe.SecretKey
	if stripe.Key == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	log.Println("✅ Stripe initialisé")

	database.ConnectDatabases()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := config.App.Port
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur ElectroYard lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
