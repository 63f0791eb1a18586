package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scatch_back_end/internal/auth"
	"scatch_back_end/internal/flash"
)

// AuthHandler porte les routes de cycle de vie des comptes clients.
type AuthHandler struct {
	Auth         *auth.Service
	Flash        *flash.Store
	CookieMaxAge int
	Secure       bool
}

// setTokenCookie pose le credential de session : cookie HttpOnly "token".
func setTokenCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", value, maxAge, "/", "", secure, true)
}

// clearTokenCookie vide le cookie (valeur vide + expiration immédiate).
func clearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", "", secure, true)
}

// Index est l'entrée du site : elle draine la notice "error" laissée par
// une session refusée ou un login raté.
func (h *AuthHandler) Index(c *gin.Context) {
	errs := h.Flash.Drain(c, flash.ChannelError)
	c.JSON(http.StatusOK, gin.H{
		"message": "hey",
		"error":   errs,
	})
}

// Register — POST /users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Fullname string `form:"fullname" json:"fullname" binding:"required"`
		Email    string `form:"email" json:"email" binding:"required,email"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tok, err := h.Auth.Register(c.Request.Context(), input.Fullname, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			h.Flash.Push(c, flash.ChannelError, "You already have an account, please login.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	setTokenCookie(c, tok, h.CookieMaxAge, h.Secure)
	c.JSON(http.StatusCreated, gin.H{
		"userId":   user.ID.Hex(),
		"fullname": user.Fullname,
		"email":    user.Email,
		"token":    tok,
	})
}

// Login — POST /users/login. Succès : cookie posé puis redirection vers la
// boutique. Échec : notice "error" et retour à l'entrée, sans préciser si
// c'est l'email ou le mot de passe qui cloche.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `form:"email" json:"email" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.Auth.Login(c.Request.Context(), input.Email, input.Password)
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
	c.Redirect(http.StatusFound, "/shop")
}

// Logout — GET /users/logout (session requise). Les tokens étant sans état
// côté serveur, déconnecter c'est effacer le cookie du client.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearTokenCookie(c, h.Secure)
	h.Flash.Push(c, flash.ChannelSuccess, "Logged out successfully")
	c.Redirect(http.StatusFound, "/")
}
