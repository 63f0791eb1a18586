package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scatch_back_end/internal/cache"
	"scatch_back_end/internal/cart"
	"scatch_back_end/internal/flash"
	"scatch_back_end/internal/middleware"
	"scatch_back_end/internal/search"
	"scatch_back_end/internal/store"
)

// ShopHandler porte la boutique et le panier. Toutes ses routes passent
// derrière le session guard.
type ShopHandler struct {
	Products store.ProductStore
	Cart     *cart.Service
	Flash    *flash.Store
}

// Shop — GET /shop : catalogue (via le cache Redis quand il est là) plus
// les notices "success" en attente.
func (h *ShopHandler) Shop(c *gin.Context) {
	ctx := c.Request.Context()

	products, ok := cache.GetProducts(ctx)
	if !ok {
		var err error
		products, err = h.Products.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
			return
		}
		cache.SetProducts(ctx, products)
	}

	success := h.Flash.Drain(c, flash.ChannelSuccess)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"success":  success,
	})
}

// Search — GET /shop/search?q= : recherche Elasticsearch, résolue ensuite
// dans le catalogue.
func (h *ShopHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	hits, err := search.Products(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, search.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recherche non disponible"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	ids := make([]primitive.ObjectID, 0, len(hits))
	for _, hex := range hits {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			ids = append(ids, id)
		}
	}

	resolved, err := h.Products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	products := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		if p, ok := resolved[id]; ok {
			products = append(products, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AddToCart — GET /addtocart/:id : ajoute la référence (sans dédup, sans
// vérifier l'existence du produit) puis renvoie vers la boutique.
func (h *ShopHandler) AddToCart(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := h.Cart.AddToCart(c.Request.Context(), user.Email, c.Param("id")); err != nil {
		if errors.Is(err, cart.ErrBadProductID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout panier"})
		return
	}

	h.Flash.Push(c, flash.ChannelSuccess, "Added to cart")
	c.Redirect(http.StatusFound, "/shop")
}

// CartPage — GET /cart : panier résolu et facture.
func (h *ShopHandler) CartPage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	bill, lines, err := h.Cart.ComputeBill(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"cart": lines,
		"bill": bill,
	})
}
