package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"electroyard_back_end/internal/cache"
)

const (
	// Limites par endpoint
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3

	// Durées de cooldown
	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return emailRateLimit("login", LoginMaxAttempts, LoginCooldown)
}

// RegisterRateLimit limite les inscriptions par email
func RegisterRateLimit() gin.HandlerFunc {
	return emailRateLimit("register", RegisterMaxAttempts, RegisterCooldown)
}

func emailRateLimit(scope string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		// Cooldown actif ?
		cooldownKey := cache.CooldownKey(scope, input.Email)
		if ttl := cache.GetCooldownTTL(cooldownKey); ttl > 0 {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		// Compteur de tentatives
		attempts, _ := cache.GetRateLimit(cache.RateLimitKey(scope, input.Email))
		if attempts >= int64(maxAttempts) {
			cache.SetCooldown(cooldownKey, cooldown)
			cache.ResetRateLimit(cache.RateLimitKey(scope, input.Email))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Bloqué pendant %d minutes", int(cooldown.Minutes())),
				"retry_after": int(cooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
