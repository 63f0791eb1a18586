package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"scatch_back_end/internal/auth"
	"scatch_back_end/internal/cart"
	"scatch_back_end/internal/config"
	"scatch_back_end/internal/database"
	"scatch_back_end/internal/flash"
	"scatch_back_end/internal/handlers"
	"scatch_back_end/internal/middleware"
	"scatch_back_end/internal/routes"
	"scatch_back_end/internal/search"
	"scatch_back_end/internal/store"
	"scatch_back_end/internal/token"
)

func main() {
	cfg := config.Load()

	database.ConnectDatabases(cfg)
	defer database.Close()
	defer search.Wait()

	users := store.NewMongoUsers(database.MongoDB)
	owners := store.NewMongoOwners(database.MongoDB)
	products := store.NewMongoProducts(database.MongoDB)

	codec := token.NewCodec(cfg.JWTKey, cfg.TokenTTL)
	notices := flash.NewStore(cfg.SessionSecret, !cfg.DevMode)
	accounts := auth.NewService(users, owners, codec)
	basket := cart.NewService(users, products)

	guard := &middleware.SessionGuard{
		Codec:  codec,
		Users:  users,
		Owners: owners,
		Flash:  notices,
	}

	cookieMaxAge := int(cfg.TokenTTL.Seconds())
	deps := routes.Deps{
		Guard: guard,
		Auth: &handlers.AuthHandler{
			Auth:         accounts,
			Flash:        notices,
			CookieMaxAge: cookieMaxAge,
			Secure:       !cfg.DevMode,
		},
		Shop: &handlers.ShopHandler{
			Products: products,
			Cart:     basket,
			Flash:    notices,
		},
		Owner: &handlers.OwnerHandler{
			Auth:          accounts,
			Products:      products,
			Flash:         notices,
			CookieMaxAge:  cookieMaxAge,
			Secure:        !cfg.DevMode,
			SignupEnabled: cfg.DevMode,
		},
	}

	r := gin.Default()
	routes.RegisterRoutes(r, deps)

	log.Println("🚀 Serveur Scatch lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}
