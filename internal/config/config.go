package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du processus, chargée une seule
// fois au démarrage puis injectée dans les constructeurs. Aucun package ne
// relit l'environnement après Load().
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTKey        string
	SessionSecret string
	TokenTTL      time.Duration
	RedisAddr     string
	ElasticURL    string
	DevMode       bool
}

func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGO_DB", "scatch"),
		JWTKey:        os.Getenv("JWT_KEY"),
		SessionSecret: os.Getenv("EXPRESS_SESSION_SECRET"),
		TokenTTL:      24 * time.Hour,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		ElasticURL:    os.Getenv("ELASTIC_URL"),
		DevMode:       os.Getenv("ENV") == "development",
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("❌ TOKEN_TTL invalide: %v", err)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.JWTKey == "" {
		log.Fatal("❌ JWT_KEY manquant dans .env")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("❌ EXPRESS_SESSION_SECRET manquant dans .env")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
