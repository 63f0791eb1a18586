package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product est une entrée du catalogue (collection "products"). Les champs
// de style sont opaques pour le backend, ils sont rendus tels quels par le
// front. L'image est stockée dans le document lui-même.
type Product struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Price      float64            `json:"price" bson:"price"`
	Discount   float64            `json:"discount,omitempty" bson:"discount,omitempty"`
	Bgcolor    string             `json:"bgcolor,omitempty" bson:"bgcolor,omitempty"`
	Panelcolor string             `json:"panelcolor,omitempty" bson:"panelcolor,omitempty"`
	Textcolor  string             `json:"textcolor,omitempty" bson:"textcolor,omitempty"`
	Image      []byte             `json:"-" bson:"image,omitempty"`
}
