package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken couvre toutes les causes de rejet : token absent,
// malformé, signature incorrecte, expiré, algorithme inattendu. Les
// appelants ne distinguent jamais la cause.
var ErrInvalidToken = errors.New("token invalide")

// Claims ne porte qu'un seul fait d'identité : l'email du compte.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Codec signe et vérifie les credentials de session. Le secret est la
// configuration JWT_KEY, chargée une fois au démarrage, jamais tournée à
// chaud.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue produit un token HS256 portant l'email, la date d'émission et une
// expiration.
func (c *Codec) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: email,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signature token: %w", err)
	}
	return signed, nil
}

// Verify rend l'email du porteur ou ErrInvalidToken. Jamais de panic sur
// une entrée arbitraire : une chaîne vide ou du bruit passent par le même
// chemin d'erreur que la signature invalide.
func (c *Codec) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Email == "" {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}
