package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scatch_back_end/internal/store"
	"scatch_back_end/internal/token"
)

func newService(t *testing.T) (*Service, *store.MemoryUsers, *store.MemoryOwners, *token.Codec) {
	t.Helper()

	users := store.NewMemoryUsers()
	owners := store.NewMemoryOwners()
	codec := token.NewCodec("auth-secret", time.Hour)
	return NewService(users, owners, codec), users, owners, codec
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	svc, users, _, codec := newService(t)
	ctx := context.Background()

	u, tok, err := svc.Register(ctx, "Alice", "a@x.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.Fullname)
	require.Empty(t, u.Password, "le hash ne doit pas remonter")

	// en stock : un hash bcrypt, jamais le mot de passe en clair
	hash, err := users.Credentials(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "pw", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))

	// le token émis porte bien l'email
	email, err := codec.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "a@x.com", "pw")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Alice bis", "a@x.com", "autre")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, _, _, codec := newService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "a@x.com", "pw")
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	email, err := codec.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", email)
}

// Mot de passe faux et email inconnu rendent la même erreur.
func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "mauvais")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@x.com", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOwnerLifecycle(t *testing.T) {
	t.Parallel()

	svc, _, owners, _ := newService(t)
	ctx := context.Background()

	o, _, err := svc.RegisterOwner(ctx, "Bob", "b@x.com", "pw")
	require.NoError(t, err)
	require.Empty(t, o.Password)

	hash, err := owners.Credentials(ctx, "b@x.com")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))

	_, err = svc.LoginOwner(ctx, "b@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.LoginOwner(ctx, "b@x.com", "mauvais")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
