package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "electroyard_products", cfg.Scylla.ProductsKeyspace)
	assert.Equal(t, "electroyard_users", cfg.Scylla.UsersKeyspace)
	assert.Equal(t, "electroyard_orders", cfg.Mongo.OrdersDB)
	assert.Equal(t, "localhost:6379", cfg.Redis.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCYLLA_HOSTS", "node1:9042,node2:9042")
	t.Setenv("JWT_SECRET", "cle-de-test")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"node1:9042", "node2:9042"}, cfg.Scylla.Hosts)
	assert.Equal(t, "cle-de-test", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry())
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestParseInvalidInt(t *testing.T) {
	t.Setenv("SMTP_PORT", "pas-un-nombre")

	_, err := Parse()
	assert.Error(t, err)
}
