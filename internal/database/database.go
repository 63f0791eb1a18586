package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scatch_back_end/internal/config"
)

// --- Variables Globales ---
var (
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise MongoDB (obligatoire), puis Redis et
// Elasticsearch qui restent optionnels : sans eux le cache et la recherche
// se désactivent proprement.
func ConnectDatabases(cfg config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := connectMongo(ctx, cfg); err != nil {
		log.Fatalf("❌ Échec initialisation MongoDB: %v", err)
	}

	connectRedis(ctx, cfg)
	connectElastic(cfg)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// MONGO DB (collections users / owners / products)
// =============================================

func connectMongo(ctx context.Context, cfg config.Config) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connexion: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	Mongo = client
	MongoDB = client.Database(cfg.MongoDatabase)
	log.Printf("✅ MongoDB connecté (base '%s')", cfg.MongoDatabase)

	return ensureIndexes(ctx)
}

// ensureIndexes pose les index uniques sur l'email des comptes. C'est le
// store qui garantit l'unicité, pas le code applicatif.
func ensureIndexes(ctx context.Context) error {
	emailUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{"users", "owners"} {
		if _, err := MongoDB.Collection(name).Indexes().CreateOne(ctx, emailUnique); err != nil {
			return fmt.Errorf("index email sur %s: %w", name, err)
		}
	}
	return nil
}

// =============================================
// REDIS (cache catalogue)
// =============================================

func connectRedis(ctx context.Context, cfg config.Config) {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_ADDR non configuré — cache catalogue désactivé")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis injoignable (%v) — cache catalogue désactivé", err)
		return
	}

	Redis = client
	log.Println("✅ Redis connecté")
}

// =============================================
// ELASTICSEARCH (recherche produits)
// =============================================

func connectElastic(cfg config.Config) {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche produits désactivée")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
	})
	if err != nil {
		log.Printf("⚠️ Client Elasticsearch non initialisé (%v) — recherche désactivée", err)
		return
	}

	Elastic = client
	log.Println("✅ Elasticsearch connecté")
}

// Close ferme proprement les connexions ouvertes par ConnectDatabases.
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if Mongo != nil {
		if err := Mongo.Disconnect(ctx); err != nil {
			log.Printf("⚠️ Erreur fermeture MongoDB: %v", err)
		} else {
			log.Println("🔌 Connexion MongoDB fermée")
		}
	}
	if Redis != nil {
		if err := Redis.Close(); err != nil {
			log.Printf("⚠️ Erreur fermeture Redis: %v", err)
		}
	}
}
