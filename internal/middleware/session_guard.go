package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scatch_back_end/internal/flash"
	"scatch_back_end/internal/models"
	"scatch_back_end/internal/store"
	"scatch_back_end/internal/token"
)

// Clés de contexte posées par le guard.
const (
	ContextUserKey  = "user"
	ContextOwnerKey = "owner"
)

// Message unique quelle que soit la cause du refus : pas d'indice côté
// client sur pourquoi l'autorisation a échoué.
const sessionExpiredMessage = "Session expired, please login again."

// SessionGuard protège les routes authentifiées. Par requête : lecture du
// cookie "token", vérification du credential, résolution de l'identité.
// Tout échec converge vers le même résultat observable, une notice
// "error" et une redirection vers l'entrée du site.
type SessionGuard struct {
	Codec  *token.Codec
	Users  store.UserStore
	Owners store.OwnerStore
	Flash  *flash.Store
}

// RequireUser accroche l'utilisateur résolu au contexte ou détourne la
// requête. Exactement une écriture flash et une redirection côté refus,
// exactement un c.Set côté succès.
func (g *SessionGuard) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie("token")
		if err != nil || tok == "" {
			g.deny(c)
			return
		}

		email, err := g.Codec.Verify(tok)
		if err != nil {
			g.deny(c)
			return
		}

		user, err := g.Users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			// ErrNotFound = session forgée ou périmée, les autres erreurs
			// store convergent vers le même refus
			g.deny(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireOwner : même machine à états, résolue contre la collection owners.
func (g *SessionGuard) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie("token")
		if err != nil || tok == "" {
			g.deny(c)
			return
		}

		email, err := g.Codec.Verify(tok)
		if err != nil {
			g.deny(c)
			return
		}

		owner, err := g.Owners.FindByEmail(c.Request.Context(), email)
		if err != nil {
			g.deny(c)
			return
		}

		c.Set(ContextOwnerKey, owner)
		c.Next()
	}
}

// deny est l'unique sortie refusée : action terminale, aucun handler aval
// ne s'exécute.
func (g *SessionGuard) deny(c *gin.Context) {
	g.Flash.Push(c, flash.ChannelError, sessionExpiredMessage)
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

// CurrentUser relit l'identité posée par RequireUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// CurrentOwner relit l'identité posée par RequireOwner.
func CurrentOwner(c *gin.Context) (*models.Owner, bool) {
	v, ok := c.Get(ContextOwnerKey)
	if !ok {
		return nil, false
	}
	o, ok := v.(*models.Owner)
	return o, ok
}
