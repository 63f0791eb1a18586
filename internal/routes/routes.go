package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"scatch_back_end/internal/handlers"
	"scatch_back_end/internal/middleware"
)

// Deps rassemble les handlers et le guard construits au démarrage.
type Deps struct {
	Guard *middleware.SessionGuard
	Auth  *handlers.AuthHandler
	Shop  *handlers.ShopHandler
	Owner *handlers.OwnerHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestAudit())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	// Entrée du site (draine la notice "error")
	r.GET("/", d.Auth.Index)

	// Comptes clients
	users := r.Group("/users")
	{
		users.POST("/register", d.Auth.Register)
		users.POST("/login", d.Auth.Login)
		users.GET("/logout", d.Guard.RequireUser(), d.Auth.Logout)
	}

	// Alias historiques montés à la racine
	r.POST("/register", d.Auth.Register)
	r.POST("/login", d.Auth.Login)
	r.GET("/logout", d.Guard.RequireUser(), d.Auth.Logout)

	// Boutique et panier (session requise)
	r.GET("/shop", d.Guard.RequireUser(), d.Shop.Shop)
	r.GET("/shop/search", d.Guard.RequireUser(), d.Shop.Search)
	r.GET("/addtocart/:id", d.Guard.RequireUser(), d.Shop.AddToCart)
	r.GET("/cart", d.Guard.RequireUser(), d.Shop.CartPage)

	// Surface admin
	owner := r.Group("/owner")
	{
		owner.POST("/register", d.Owner.Register)
		owner.POST("/login", d.Owner.Login)
		owner.GET("/admin", d.Guard.RequireOwner(), d.Owner.Admin)
	}
	r.POST("/product/create", d.Guard.RequireOwner(), d.Owner.CreateProduct)
}
