package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration de l'application.
// Chargée une seule fois au démarrage — plus aucun os.Getenv
// dans les handlers ou la logique métier.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	JWT     JWTConfig
	Scylla  ScyllaConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	MinIO   MinIOConfig
	Elastic ElasticConfig
	Stripe  StripeConfig
	SMTP    SMTPConfig
}

type JWTConfig struct {
	Secret      string `env:"JWT_SECRET" envDefault:"super_secret"`
	ExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`
}

// Expiry retourne la durée de validité des tokens.
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

type ScyllaConfig struct {
	Hosts      []string `env:"SCYLLA_HOSTS" envSeparator:"," envDefault:"localhost:9042"`
	SSLEnabled bool     `env:"SCYLLA_SSL_ENABLED" envDefault:"false"`
	CACertPath string   `env:"SCYLLA_SSL_CA_PATH"`

	ProductsKeyspace string `env:"SCYLLA_KS_PRODUCTS_KEYSPACE" envDefault:"electroyard_products"`
	ProductsRole     string `env:"SCYLLA_KS_PRODUCTS_ROLE"`
	ProductsPassword string `env:"SCYLLA_KS_PRODUCTS_PASSWORD"`

	UsersKeyspace string `env:"SCYLLA_KS_USERS_KEYSPACE" envDefault:"electroyard_users"`
	UsersRole     string `env:"SCYLLA_KS_USERS_ROLE"`
	UsersPassword string `env:"SCYLLA_KS_USERS_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	OrdersDB string `env:"MONGO_ORDERS_DB" envDefault:"electroyard_orders"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
}

type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"electroyard"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

type ElasticConfig struct {
	URL      string `env:"ELASTIC_URL"`
	User     string `env:"ELASTIC_USER"`
	Password string `env:"ELASTIC_PASSWORD"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@electroyard.com"`
}

// App est la configuration globale, remplie par Load().
var App Config

// Load charge le .env puis parse l'environnement dans App.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}
	App = cfg
}

// Parse lit l'environnement dans une Config sans toucher au global.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
