package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"electroyard_back_end/internal/handlers"
	"electroyard_back_end/internal/handlers/admin"
	"electroyard_back_end/internal/handlers/payement"
	"electroyard_back_end/internal/handlers/product"
	"electroyard_back_end/internal/handlers/user"
	"electroyard_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// 🔐 Authentification
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.GET("/me", middleware.AuthRequired(), user.GetMe)
		auth.PUT("/me", middleware.AuthRequired(), user.UpdateMe)
		auth.PUT("/address", middleware.AuthRequired(), user.UpdateAddress)
	}

	// 🛍️ Catalogue (lecture publique, écriture admin)
	products := api.Group("/products")
	{
		products.GET("", product.GetAllProducts)
		products.GET("/latest", product.GetLatestProducts)
		products.GET("/discounted", product.GetDiscountedProducts)
		products.GET("/search", product.SearchProducts)
		products.GET("/category/:name", product.GetProductsByCategory)
		products.GET("/:id", product.GetProductByID)
		products.GET("/:id/reviews", product.GetReviews)
		products.POST("/:id/reviews", middleware.AuthRequired(), product.AddReview)

		products.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), product.CreateProduct)
		products.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), product.UpdateProduct)
		products.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), product.DeleteProduct)
	}

	// 📂 Catégories
	categories := api.Group("/categories")
	{
		categories.GET("", product.GetAllCategories)
		categories.GET("/:id", product.GetCategoryByID)
		categories.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), product.CreateCategory)
		categories.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), product.UpdateCategory)
		categories.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), product.DeleteCategory)
	}

	// 🛒 Panier (toujours authentifié)
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/items", user.AddToCart)
		cart.PUT("/items/:item_id", user.UpdateCartItem)
		cart.DELETE("/items/:item_id", user.RemoveFromCart)
		cart.DELETE("/clear", user.ClearCart)
	}

	// 📦 Commandes
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", user.CreateOrder)
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
		orders.PUT("/:id/status", middleware.RequireAdmin(), admin.UpdateOrderStatus)
		orders.PUT("/:id/payment", payement.MarkOrderPaid)
	}

	// 💳 Paiements Stripe
	payments := api.Group("/payments", middleware.AuthRequired())
	{
		payments.POST("/create-payment-intent", payement.CreatePaymentIntent)
		payments.GET("/:order_id", payement.GetPaymentDetails)
	}

	// 🖼️ Images (admin uniquement)
	images := api.Group("/images", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		images.POST("/upload", handlers.UploadImage)
	}

	// 🛠️ Administration
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminGroup.GET("/users", admin.GetAllUsers)
		adminGroup.GET("/orders", admin.GetAllOrders)
	}
}
