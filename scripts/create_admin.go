package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/conectaong/voluntariado-api/config"
	"github.com/conectaong/voluntariado-api/databases"
	"github.com/conectaong/voluntariado-api/models"
)

// Creates an admin account, or promotes the volunteer already using the email.
// Admins cannot register through the API.
// Usage: go run scripts/create_admin.go <email> <password> [name]
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/create_admin.go <email> <password> [name]")
		fmt.Println("Example: go run scripts/create_admin.go admin@conectaong.org s3nh4forte \"Equipe Conecta\"")
		os.Exit(1)
	}

	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	name := "Administrador"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	if len(password) < 6 {
		fmt.Println("Error: password must have at least 6 characters")
		os.Exit(1)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	conf, err := config.New()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	client, err := databases.NewClient(conf)
	if err != nil {
		fmt.Printf("Error creating client: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	volunteers := databases.NewVolunteerDatabase(databases.NewDatabase(conf, client))
	now := primitive.NewDateTimeFromTime(time.Now())

	res, err := volunteers.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"role":      models.RoleAdmin,
		"password":  string(hashedPassword),
		"isActive":  true,
		"updatedAt": now,
	}})
	if err != nil {
		fmt.Printf("Error updating account: %v\n", err)
		os.Exit(1)
	}
	if res.MatchedCount > 0 {
		fmt.Printf("Promoted %s to admin\n", email)
		return
	}

	admin := models.Volunteer{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      models.RoleAdmin,
		Skills:    []string{},
		Interests: []string{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := volunteers.InsertOne(ctx, admin); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created admin %s (%s)\n", email, admin.ID.Hex())
}
