package cart

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scatch_back_end/internal/models"
	"scatch_back_end/internal/store"
)

// ErrBadProductID : l'id fourni n'est pas une référence syntaxiquement
// valide. L'existence du produit, elle, n'est pas vérifiée à l'ajout.
var ErrBadProductID = errors.New("id produit invalide")

// Surcharge fixe appliquée à la facture (frais de plateforme).
const platformFee = 20

// Service est le moteur du panier. Le panier est une liste de références
// produit sur le document user, résolues seulement à la lecture : un
// changement de prix se répercute sur les lignes déjà ajoutées.
type Service struct {
	users    store.UserStore
	products store.ProductStore
}

func NewService(users store.UserStore, products store.ProductStore) *Service {
	return &Service{users: users, products: products}
}

// AddToCart ajoute la référence au panier. Pas de déduplication : ajouter
// deux fois le même produit donne deux lignes, c'est le comportement
// attendu (re-ajouter tient lieu de quantité).
func (s *Service) AddToCart(ctx context.Context, email, productID string) error {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadProductID, productID)
	}
	return s.users.PushCart(ctx, email, id)
}

// ComputeBill résout les références du panier et calcule la facture.
// Seule la première ligne résolue est facturée :
// prix + frais de plateforme - remise. Panier vide → 0. Limitation connue
// héritée du modèle de facturation, à ne pas généraliser sans consigne.
func (s *Service) ComputeBill(ctx context.Context, email string) (float64, []models.Product, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return 0, nil, err
	}

	if len(u.Cart) == 0 {
		return 0, []models.Product{}, nil
	}

	resolved, err := s.products.FindByIDs(ctx, u.Cart)
	if err != nil {
		return 0, nil, err
	}

	// les références mortes sont rendues comme absentes, pas comme erreurs
	lines := make([]models.Product, 0, len(u.Cart))
	for _, id := range u.Cart {
		if p, ok := resolved[id]; ok {
			lines = append(lines, p)
		}
	}

	if len(lines) == 0 {
		return 0, lines, nil
	}

	first := lines[0]
	bill := first.Price + platformFee - first.Discount
	return bill, lines, nil
}
