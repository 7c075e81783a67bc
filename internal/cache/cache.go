package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"electroyard_back_end/internal/database"
)

var ctx = context.Background()

// --- Cache générique (listes produits / catégories) ---

// SetCache stocke une valeur dans le cache
func SetCache(key string, value interface{}, duration time.Duration) error {
	return database.Redis.Set(ctx, key, value, duration).Err()
}

// GetCache récupère une valeur du cache
func GetCache(key string) (string, error) {
	return database.Redis.Get(ctx, key).Result()
}

// DeleteCache supprime une clé du cache
func DeleteCache(key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// --- Rate Limiting (tentatives de connexion) ---

// IncrementRateLimit incrémente le compteur de rate limit
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetRateLimit récupère le compteur de rate limit
func GetRateLimit(key string) (int64, error) {
	val, err := database.Redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// ResetRateLimit remet un compteur à zéro (login réussi)
func ResetRateLimit(key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// SetCooldown bloque une clé pendant une durée donnée
func SetCooldown(key string, duration time.Duration) error {
	return database.Redis.Set(ctx, key, "1", duration).Err()
}

// GetCooldownTTL retourne le temps restant d'un cooldown (0 si aucun)
func GetCooldownTTL(key string) time.Duration {
	if database.Redis.Exists(ctx, key).Val() == 0 {
		return 0
	}
	return database.Redis.TTL(ctx, key).Val()
}

// RateLimitKey construit une clé de rate limit namespacée
func RateLimitKey(scope, id string) string {
	return fmt.Sprintf("%s_attempts:%s", scope, id)
}

// CooldownKey construit une clé de cooldown namespacée
func CooldownKey(scope, id string) string {
	return fmt.Sprintf("%s_cooldown:%s", scope, id)
}
