// Command seed creates an initial account so a fresh deployment has a
// teacher to log in with.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"school-portal/app/config"
	"school-portal/app/database"
	"school-portal/app/models"
	"school-portal/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "email for the new account")
	password := flag.String("password", "", "password for the new account")
	role := flag.String("role", "teacher", "role: student or teacher")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	parsedRole, err := models.ParseRole(*role)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	db := config.InitDB(cfg)
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	hashed, err := auth.HashPassword(*password, cfg.BcryptCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    auth.NormalizeEmail(*email),
		Password: hashed,
		Role:     parsedRole,
		IsActive: true,
	}

	if err := database.NewStore(db).CreateUser(user); err != nil {
		log.Fatal("Failed to create user: ", err)
	}

	fmt.Printf("User created successfully: %s (%s)\n", user.Email, user.Role)
}
