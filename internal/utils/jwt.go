package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"electroyard_back_end/internal/config"
	"electroyard_back_end/internal/models"
)

// GenerateJWT signe un token de session pour un utilisateur.
// La config est passée explicitement : pas de lecture d'environnement ici.
func GenerateJWT(user models.User, cfg config.JWTConfig) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(cfg.Expiry()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseJWT valide un token et retourne ses claims.
func ParseJWT(tokenString string, cfg config.JWTConfig) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token invalide")
	}
	return claims, nil
}
