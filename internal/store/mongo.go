package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scatch_back_end/internal/models"
)

// Implémentations MongoDB des stores. Chaque struct ne porte que sa
// collection, la connexion est gérée par internal/database.

type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{col: db.Collection("users")}
}

func (s *MongoUsers) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Cart == nil {
		u.Cart = []primitive.ObjectID{}
	}
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insertion user: %w", err)
	}
	return nil
}

// FindByEmail exclut le champ password par projection : le hash ne doit
// jamais franchir la frontière d'autorisation.
func (s *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture user: %w", err)
	}
	return &u, nil
}

func (s *MongoUsers) Credentials(ctx context.Context, email string) (string, error) {
	var doc struct {
		Password string `bson:"password"`
	}
	err := s.col.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"password": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lecture credentials: %w", err)
	}
	return doc.Password, nil
}

// PushCart ajoute la référence produit par $push atomique : deux requêtes
// concurrentes du même client ne se perdent pas mutuellement leur ajout.
func (s *MongoUsers) PushCart(ctx context.Context, email string, productID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{"cart": productID}})
	if err != nil {
		return fmt.Errorf("ajout panier: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoOwners struct {
	col *mongo.Collection
}

func NewMongoOwners(db *mongo.Database) *MongoOwners {
	return &MongoOwners{col: db.Collection("owners")}
}

func (s *MongoOwners) Create(ctx context.Context, o *models.Owner) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if o.Products == nil {
		o.Products = []primitive.ObjectID{}
	}
	if _, err := s.col.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insertion owner: %w", err)
	}
	return nil
}

func (s *MongoOwners) FindByEmail(ctx context.Context, email string) (*models.Owner, error) {
	var o models.Owner
	err := s.col.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture owner: %w", err)
	}
	return &o, nil
}

func (s *MongoOwners) Credentials(ctx context.Context, email string) (string, error) {
	var doc struct {
		Password string `bson:"password"`
	}
	err := s.col.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"password": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lecture credentials: %w", err)
	}
	return doc.Password, nil
}

type MongoProducts struct {
	col *mongo.Collection
}

func NewMongoProducts(db *mongo.Database) *MongoProducts {
	return &MongoProducts{col: db.Collection("products")}
}

func (s *MongoProducts) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insertion produit: %w", err)
	}
	return nil
}

func (s *MongoProducts) All(ctx context.Context) ([]models.Product, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lecture catalogue: %w", err)
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("décodage catalogue: %w", err)
	}
	return products, nil
}

// FindByIDs résout un lot de références panier en une seule requête $in.
// Les ids sans produit correspondant sont simplement absents de la map.
func (s *MongoProducts) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("résolution panier: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var p models.Product
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("décodage produit: %w", err)
		}
		out[p.ID] = p
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("résolution panier: %w", err)
	}
	return out, nil
}
