package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"electroyard_back_end/internal/cache"
	"electroyard_back_end/internal/config"
	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/middleware"
	"electroyard_back_end/internal/models"
	"electroyard_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

//
// 🟢 POST /api/auth/register
//
func Register(c *gin.Context) {
	var input struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tous les champs sont obligatoires"})
		return
	}

	// Chaque tentative alimente le compteur du rate limiter d'inscription
	if _, err := cache.IncrementRateLimit(cache.RateLimitKey("register", input.Email), middleware.RegisterCooldown); err != nil {
		log.Printf("⚠️ Erreur compteur tentatives inscription: %v", err)
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	userID := gocql.TimeUUID()

	// ✅ Réserve l'email via LWT : garantit l'unicité côté Scylla
	applied, err := session.Query(
		`INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS`,
		input.Email, userID).ScanCAS()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	now := time.Now()
	if err := session.Query(
		`INSERT INTO users (user_id, email, password, first_name, last_name, phone_number,
		                    address, city, postal_code, country, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, input.Email, hashedPassword, input.FirstName, input.LastName, input.PhoneNumber,
		"", "", "", "", models.RoleUser, now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:          userID.String(),
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Role:        models.RoleUser,
		CreatedAt:   now,
	}

	token, err := utils.GenerateJWT(user, config.App.JWT)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Nouvel utilisateur inscrit: %s", input.Email)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inscription réussie",
		"token":   token,
		"user":    user,
	})
}

//
// 🔑 POST /api/auth/login
//
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var userID gocql.UUID
	if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, input.Email).
		Scan(&userID); err != nil {
		recordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	user, err := fetchUserByID(session, userID)
	if err != nil {
		recordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		recordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	// Login réussi : on remet le compteur de tentatives à zéro
	cache.ResetRateLimit(cache.RateLimitKey("login", input.Email))

	token, err := utils.GenerateJWT(user, config.App.JWT)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

//
// 👤 GET /api/auth/me
//
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

//
// ✏️ PUT /api/auth/me
//
func UpdateMe(c *gin.Context) {
	var input struct {
		FirstName       string                  `json:"first_name"`
		LastName        string                  `json:"last_name"`
		Email           string                  `json:"email"`
		PhoneNumber     string                  `json:"phone_number"`
		ShippingAddress *models.ShippingAddress `json:"shipping_address"`
		CurrentPassword string                  `json:"current_password"`
		NewPassword     string                  `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prénom, nom et email sont obligatoires"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	userID, _ := gocql.ParseUUID(user.ID)

	// ✅ Changement d'email : réserver la nouvelle adresse avant de libérer l'ancienne
	if input.Email != user.Email {
		applied, err := session.Query(
			`INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS`,
			input.Email, userID).ScanCAS()
		if err != nil || !applied {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		// L'échec laisse l'ancienne adresse encore mappée au compte : il
		// doit au moins laisser une trace pour un nettoyage manuel
		if err := session.Query(`DELETE FROM users_by_email WHERE email = ?`, user.Email).Exec(); err != nil {
			log.Printf("⚠️ Ancien mapping email non supprimé pour %s: %v", user.Email, err)
		}
	}

	password := user.Password
	// Changement de mot de passe : vérifie l'actuel puis re-hash le nouveau.
	// Le mot de passe n'est jamais stocké en clair.
	if input.CurrentPassword != "" && input.NewPassword != "" {
		match, err := utils.VerifyPassword(input.CurrentPassword, user.Password)
		if err != nil || !match {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe actuel incorrect"})
			return
		}
		password, err = utils.HashPassword(input.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour mot de passe"})
			return
		}
	}

	address := user.ShippingAddress
	if input.ShippingAddress != nil {
		address = *input.ShippingAddress
	}

	if err := session.Query(
		`UPDATE users SET email = ?, password = ?, first_name = ?, last_name = ?, phone_number = ?,
		                  address = ?, city = ?, postal_code = ?, country = ?
		 WHERE user_id = ?`,
		input.Email, password, input.FirstName, input.LastName, input.PhoneNumber,
		address.Address, address.City, address.PostalCode, address.Country,
		userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":          user.ID,
		"email":            input.Email,
		"first_name":       input.FirstName,
		"last_name":        input.LastName,
		"phone_number":     input.PhoneNumber,
		"shipping_address": address,
	})
}

// recordFailedLogin incrémente le compteur utilisé par le rate limiter
func recordFailedLogin(email string) {
	if _, err := cache.IncrementRateLimit(cache.RateLimitKey("login", email), middleware.LoginCooldown); err != nil {
		log.Printf("⚠️ Erreur compteur tentatives login: %v", err)
	}
}

// currentUser charge l'utilisateur du token depuis Scylla.
// Répond 401/404 et retourne ok=false en cas d'échec.
func currentUser(c *gin.Context) (models.User, bool) {
	idStr := c.GetString("user_id")
	if idStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return models.User{}, false
	}

	userID, err := gocql.ParseUUID(idStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
		return models.User{}, false
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return models.User{}, false
	}

	user, err := fetchUserByID(session, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return models.User{}, false
	}
	return user, true
}

// fetchUserByID lit un utilisateur complet depuis la table users
func fetchUserByID(session *gocql.Session, userID gocql.UUID) (models.User, error) {
	var u models.User
	var id gocql.UUID

	err := session.Query(
		`SELECT user_id, email, password, first_name, last_name, phone_number,
		        address, city, postal_code, country, role, created_at
		 FROM users WHERE user_id = ?`, userID).Scan(
		&id, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.ShippingAddress.Address, &u.ShippingAddress.City,
		&u.ShippingAddress.PostalCode, &u.ShippingAddress.Country,
		&u.Role, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	u.ID = id.String()
	return u, nil
}
