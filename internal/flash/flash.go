package flash

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// Les notices flash voyagent dans un cookie de session signé, donc elles
// sont scopées au client : deux navigateurs concurrents ne peuvent pas se
// voler leurs messages. Canaux utilisés : "success" et "error".
const (
	sessionName = "scatch_session"

	ChannelSuccess = "success"
	ChannelError   = "error"
)

type Store struct {
	cookies *sessions.CookieStore
}

// NewStore construit le store de notices avec le secret
// EXPRESS_SESSION_SECRET.
func NewStore(secret string, secure bool) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Push enregistre un message pour la prochaine requête du même client.
func (s *Store) Push(c *gin.Context, channel, message string) {
	sess, err := s.cookies.Get(c.Request, sessionName)
	if err != nil {
		// cookie illisible (secret changé, cookie corrompu) : on repart
		// d'une session neuve, Get en renvoie toujours une
		log.Printf("⚠️ Session flash illisible, réinitialisée: %v", err)
	}

	pending, _ := sess.Values[channel].([]string)
	sess.Values[channel] = append(pending, message)

	s.save(c, sess)
}

// Drain rend les messages en attente du canal et les efface : une seconde
// lecture dans la même requête rend une liste vide.
func (s *Store) Drain(c *gin.Context, channel string) []string {
	sess, err := s.cookies.Get(c.Request, sessionName)
	if err != nil {
		log.Printf("⚠️ Session flash illisible, réinitialisée: %v", err)
	}

	pending, _ := sess.Values[channel].([]string)
	if len(pending) == 0 {
		return nil
	}

	delete(sess.Values, channel)
	s.save(c, sess)
	return pending
}

// save réécrit le cookie de session en écrasant celui posé plus tôt dans
// la même requête : un seul Set-Cookie scatch_session par réponse, sinon
// les clients qui résolvent les doublons au premier trouvé ne verraient
// que le premier message de la séquence.
func (s *Store) save(c *gin.Context, sess *sessions.Session) {
	header := c.Writer.Header()
	var kept []string
	for _, v := range header["Set-Cookie"] {
		if !strings.HasPrefix(v, sessionName+"=") {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		header.Del("Set-Cookie")
	} else {
		header["Set-Cookie"] = kept
	}

	if err := sess.Save(c.Request, c.Writer); err != nil {
		log.Printf("❌ Erreur sauvegarde flash: %v", err)
	}
}
