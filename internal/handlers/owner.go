package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scatch_back_end/internal/auth"
	"scatch_back_end/internal/cache"
	"scatch_back_end/internal/flash"
	"scatch_back_end/internal/models"
	"scatch_back_end/internal/search"
	"scatch_back_end/internal/store"
)

// OwnerHandler porte la surface admin : comptes marchands et création de
// produits. Contrairement aux flux clients, les erreurs de cette surface
// remontent brutes dans la réponse.
type OwnerHandler struct {
	Auth          *auth.Service
	Products      store.ProductStore
	Flash         *flash.Store
	CookieMaxAge  int
	Secure        bool
	SignupEnabled bool
}

// Register — POST /owner/register. Fermé hors mode développement.
func (h *OwnerHandler) Register(c *gin.Context) {
	if !h.SignupEnabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to create a new owner"})
		return
	}

	var input struct {
		Fullname string `form:"fullname" json:"fullname" binding:"required"`
		Email    string `form:"email" json:"email" binding:"required,email"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, tok, err := h.Auth.RegisterOwner(c.Request.Context(), input.Fullname, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création owner"})
		return
	}

	setTokenCookie(c, tok, h.CookieMaxAge, h.Secure)
	c.JSON(http.StatusCreated, gin.H{
		"ownerId":  owner.ID.Hex(),
		"fullname": owner.Fullname,
		"email":    owner.Email,
		"token":    tok,
	})
}

// Login — POST /owner/login.
func (h *OwnerHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `form:"email" json:"email" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.Auth.LoginOwner(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Flash.Push(c, flash.ChannelError, "Email or password incorrect.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion"})
		return
	}

	setTokenCookie(c, tok, h.CookieMaxAge, h.Secure)
	c.Redirect(http.StatusFound, "/owner/admin")
}

// Admin — GET /owner/admin : panneau de création, avec les notices
// "success" en attente et le catalogue existant.
func (h *OwnerHandler) Admin(c *gin.Context) {
	products, err := h.Products.All(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	success := h.Flash.Drain(c, flash.ChannelSuccess)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"success":  success,
	})
}

// CreateProduct — POST /product/create : formulaire multipart avec l'image
// stockée dans le document produit.
func (h *OwnerHandler) CreateProduct(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.String(http.StatusInternalServerError, "prix invalide: "+err.Error())
		return
	}
	if price < 0 {
		c.String(http.StatusInternalServerError, "le prix doit être positif")
		return
	}

	discount := 0.0
	if v := c.PostForm("discount"); v != "" {
		discount, err = strconv.ParseFloat(v, 64)
		if err != nil {
			c.String(http.StatusInternalServerError, "remise invalide: "+err.Error())
			return
		}
	}

	var image []byte
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		defer f.Close()

		image, err = io.ReadAll(f)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
	}

	p := models.Product{
		Name:       c.PostForm("name"),
		Price:      price,
		Discount:   discount,
		Bgcolor:    c.PostForm("bgcolor"),
		Panelcolor: c.PostForm("panelcolor"),
		Textcolor:  c.PostForm("textcolor"),
		Image:      image,
	}

	if err := h.Products.Create(c.Request.Context(), &p); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	cache.InvalidateProducts(c.Request.Context())
	search.IndexProductAsync(p)

	h.Flash.Push(c, flash.ChannelSuccess, "Product created successfully!")
	c.Redirect(http.StatusFound, "/owner/admin")
}
