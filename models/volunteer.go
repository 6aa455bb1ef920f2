package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the authorization role carried by an access token
type Role string

// Roles. Admins are stored in the users collection alongside volunteers.
const (
	RoleVolunteer Role = "volunteer"
	RoleOng       Role = "ong"
	RoleAdmin     Role = "admin"
)

// Volunteer holds the structure for the users collection in mongo
type Volunteer struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	Role         Role               `json:"role" bson:"role"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Bio          string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills       []string           `json:"skills" bson:"skills"`
	Interests    []string           `json:"interests" bson:"interests"`
	Availability string             `json:"availability,omitempty" bson:"availability,omitempty"`
	Location     Location           `json:"location" bson:"location"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
