package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Ong holds the structure for the ongs collection in mongo
type Ong struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"`
	CNPJ        string             `json:"cnpj,omitempty" bson:"cnpj,omitempty"`
	Description string             `json:"description" bson:"description"`
	Areas       []string           `json:"areas" bson:"areas"`
	Location    Location           `json:"location" bson:"location"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Logo        string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Verified    bool               `json:"verified" bson:"verified"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
