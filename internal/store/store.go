package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scatch_back_end/internal/models"
)

var (
	// ErrNotFound : le document demandé n'existe pas. Pour une session,
	// c'est un signal légitime (token périmé ou forgé), pas une panne.
	ErrNotFound = errors.New("document introuvable")

	// ErrDuplicateEmail : l'index unique sur l'email a refusé l'insertion.
	ErrDuplicateEmail = errors.New("email déjà utilisé")
)

// UserStore expose la collection users. FindByEmail ne renvoie jamais le
// hash du mot de passe ; seul Credentials y accède, côté login.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Credentials(ctx context.Context, email string) (string, error)
	PushCart(ctx context.Context, email string, productID primitive.ObjectID) error
}

// OwnerStore expose la collection owners (comptes marchands).
type OwnerStore interface {
	Create(ctx context.Context, o *models.Owner) error
	FindByEmail(ctx context.Context, email string) (*models.Owner, error)
	Credentials(ctx context.Context, email string) (string, error)
}

// ProductStore expose le catalogue.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	All(ctx context.Context) ([]models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
}
