package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Owner est le compte marchand qui gère le catalogue (collection "owners").
type Owner struct {
	ID       primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Fullname string               `json:"fullname" bson:"fullname"`
	Email    string               `json:"email" bson:"email"`
	Password string               `json:"-" bson:"password,omitempty"`
	Products []primitive.ObjectID `json:"products" bson:"products"`
	Picture  string               `json:"picture,omitempty" bson:"picture,omitempty"`
	GSTIN    string               `json:"gstin,omitempty" bson:"gstin,omitempty"`
}
