package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"scatch_back_end/internal/flash"
	"scatch_back_end/internal/models"
	"scatch_back_end/internal/store"
	"scatch_back_end/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type guardFixture struct {
	codec   *token.Codec
	users   *store.MemoryUsers
	owners  *store.MemoryOwners
	notices *flash.Store
	router  *gin.Engine

	// positions vraies uniquement si le handler aval a tourné
	userSeen  string
	ownerSeen string
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	f := &guardFixture{
		codec:   token.NewCodec("guard-secret", time.Hour),
		users:   store.NewMemoryUsers(),
		owners:  store.NewMemoryOwners(),
		notices: flash.NewStore("session-secret", false),
	}

	guard := &SessionGuard{
		Codec:  f.codec,
		Users:  f.users,
		Owners: f.owners,
		Flash:  f.notices,
	}

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"error": f.notices.Drain(c, flash.ChannelError)})
	})
	r.GET("/shop", guard.RequireUser(), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		f.userSeen = u.Email
		c.Status(http.StatusOK)
	})
	r.GET("/owner/admin", guard.RequireOwner(), func(c *gin.Context) {
		o, ok := CurrentOwner(c)
		require.True(t, ok)
		f.ownerSeen = o.Email
		c.Status(http.StatusOK)
	})

	f.router = r
	return f
}

func (f *guardFixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// Les trois causes de refus — cookie absent, token invalide, utilisateur
// inconnu — produisent exactement le même résultat observable.
func TestGuard_CollapsesAllDenials(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)

	unknown, err := f.codec.Issue("ghost@x.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"sans cookie", nil},
		{"cookie vide", &http.Cookie{Name: "token", Value: ""}},
		{"token bruité", &http.Cookie{Name: "token", Value: "garbage.token.value"}},
		{"utilisateur inconnu", &http.Cookie{Name: "token", Value: unknown}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tc.cookie != nil {
				w = f.get("/shop", tc.cookie)
			} else {
				w = f.get("/shop")
			}

			require.Equal(t, http.StatusFound, w.Code)
			require.Equal(t, "/", w.Header().Get("Location"))
			require.Empty(t, f.userSeen, "le handler aval ne doit pas tourner")

			// la notice "error" attend le client sur la page d'entrée
			sessionCookies := w.Result().Cookies()
			require.NotEmpty(t, sessionCookies)

			home := f.get("/", sessionCookies...)
			require.Equal(t, http.StatusOK, home.Code)
			require.Contains(t, home.Body.String(), "Session expired, please login again.")
		})
	}
}

func TestGuard_AuthorizedAttachesUser(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)

	err := f.users.Create(context.Background(), &models.User{
		Fullname: "Alice",
		Email:    "a@x.com",
		Password: "$2a$10$hash",
	})
	require.NoError(t, err)

	tok, err := f.codec.Issue("a@x.com")
	require.NoError(t, err)

	w := f.get("/shop", &http.Cookie{Name: "token", Value: tok})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "a@x.com", f.userSeen)
}

func TestGuard_ExpiredTokenDenied(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)

	err := f.users.Create(context.Background(), &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	expired, err := token.NewCodec("guard-secret", -time.Minute).Issue("a@x.com")
	require.NoError(t, err)

	w := f.get("/shop", &http.Cookie{Name: "token", Value: expired})
	require.Equal(t, http.StatusFound, w.Code)
	require.Empty(t, f.userSeen)
}

// Un token client valide ne donne pas accès à la surface admin : la
// résolution se fait contre la collection owners.
func TestGuard_UserTokenDeniedOnOwnerRoute(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)

	err := f.users.Create(context.Background(), &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	tok, err := f.codec.Issue("a@x.com")
	require.NoError(t, err)

	w := f.get("/owner/admin", &http.Cookie{Name: "token", Value: tok})
	require.Equal(t, http.StatusFound, w.Code)
	require.Empty(t, f.ownerSeen)
}
