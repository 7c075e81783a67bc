package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"electroyard_back_end/internal/database"
	"electroyard_back_end/internal/models"
)

//
// 🏠 PUT /api/auth/address
//
func UpdateAddress(c *gin.Context) {
	var input struct {
		ShippingAddress models.ShippingAddress `json:"shipping_address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
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
	addr := input.ShippingAddress

	if err := session.Query(
		`UPDATE users SET address = ?, city = ?, postal_code = ?, country = ? WHERE user_id = ?`,
		addr.Address, addr.City, addr.PostalCode, addr.Country, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresse"})
		return
	}

	user.ShippingAddress = addr
	user.Password = ""
	c.JSON(http.StatusOK, user)
}
