package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User est le document de la collection "users". Le champ Password ne
// contient jamais autre chose qu'un hash bcrypt et ne sort jamais en JSON.
type User struct {
	ID       primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Fullname string               `json:"fullname" bson:"fullname"`
	Email    string               `json:"email" bson:"email"`
	Password string               `json:"-" bson:"password,omitempty"`
	Cart     []primitive.ObjectID `json:"cart" bson:"cart"`
	Picture  string               `json:"picture,omitempty" bson:"picture,omitempty"`
}
