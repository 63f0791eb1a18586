package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scatch_back_end/internal/models"
	"scatch_back_end/internal/store"
)

func newCartFixture(t *testing.T) (*Service, *store.MemoryUsers, *store.MemoryProducts) {
	t.Helper()

	users := store.NewMemoryUsers()
	products := store.NewMemoryProducts()

	err := users.Create(context.Background(), &models.User{
		Fullname: "Alice",
		Email:    "a@x.com",
	})
	require.NoError(t, err)

	return NewService(users, products), users, products
}

// Ajouter deux fois le même produit donne deux lignes : pas de
// déduplication.
func TestAddToCart_NoDedup(t *testing.T) {
	t.Parallel()

	svc, users, _ := newCartFixture(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", id.Hex()))
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", id.Hex()))

	u, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{id, id}, u.Cart)
}

// L'existence du produit n'est pas vérifiée à l'ajout, seule la syntaxe de
// la référence compte.
func TestAddToCart_DeferredValidation(t *testing.T) {
	t.Parallel()

	svc, users, _ := newCartFixture(t)
	ctx := context.Background()

	ghost := primitive.NewObjectID()
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", ghost.Hex()))

	u, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, u.Cart, 1)
}

func TestAddToCart_BadID(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCartFixture(t)

	err := svc.AddToCart(context.Background(), "a@x.com", "pas-un-objectid")
	require.ErrorIs(t, err, ErrBadProductID)
}

func TestAddToCart_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCartFixture(t)

	err := svc.AddToCart(context.Background(), "ghost@x.com", primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, store.ErrNotFound)
}

// Seule la première ligne est facturée : prix + 20 - remise, quelle que
// soit la longueur du panier.
func TestComputeBill_FirstLineOnly(t *testing.T) {
	t.Parallel()

	svc, _, products := newCartFixture(t)
	ctx := context.Background()

	p1 := &models.Product{Name: "sac", Price: 100, Discount: 10}
	p2 := &models.Product{Name: "montre", Price: 999}
	require.NoError(t, products.Create(ctx, p1))
	require.NoError(t, products.Create(ctx, p2))

	require.NoError(t, svc.AddToCart(ctx, "a@x.com", p1.ID.Hex()))
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", p2.ID.Hex()))

	bill, lines, err := svc.ComputeBill(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, float64(110), bill) // 100 + 20 - 10
}

func TestComputeBill_EmptyCart(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCartFixture(t)

	bill, lines, err := svc.ComputeBill(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Empty(t, lines)
	require.Equal(t, float64(0), bill)
}

func TestComputeBill_DefaultDiscount(t *testing.T) {
	t.Parallel()

	svc, _, products := newCartFixture(t)
	ctx := context.Background()

	p := &models.Product{Name: "sac", Price: 50}
	require.NoError(t, products.Create(ctx, p))
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", p.ID.Hex()))

	bill, _, err := svc.ComputeBill(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, float64(70), bill) // remise absente = 0
}

// Une référence morte est rendue absente : la facture part de la première
// ligne qui se résout encore.
func TestComputeBill_SkipsDeadReferences(t *testing.T) {
	t.Parallel()

	svc, _, products := newCartFixture(t)
	ctx := context.Background()

	p := &models.Product{Name: "montre", Price: 999}
	require.NoError(t, products.Create(ctx, p))

	ghost := primitive.NewObjectID()
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", ghost.Hex()))
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", p.ID.Hex()))

	bill, lines, err := svc.ComputeBill(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, float64(1019), bill) // 999 + 20 - 0
}

// Le panier ne copie pas le produit : un changement de prix se répercute
// sur les lignes déjà ajoutées.
func TestComputeBill_ReferenceSemantics(t *testing.T) {
	t.Parallel()

	svc, _, products := newCartFixture(t)
	ctx := context.Background()

	p := &models.Product{Name: "sac", Price: 100}
	require.NoError(t, products.Create(ctx, p))
	require.NoError(t, svc.AddToCart(ctx, "a@x.com", p.ID.Hex()))

	// le marchand change le prix après l'ajout
	p.Price = 200
	require.NoError(t, products.Create(ctx, p))

	bill, _, err := svc.ComputeBill(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, float64(220), bill)
}
