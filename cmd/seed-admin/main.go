// Command seed-admin creates the bootstrap admin account, or resets its
// password if it already exists.
package main

import (
	"log"
	"os"

	"go-retail-pos/internal/model"
	"go-retail-pos/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password":  string(hashed),
			"role":      model.RoleAdmin,
			"is_active": true,
		}).Error; err != nil {
			log.Fatalf("Failed to reset admin: %v", err)
		}
		log.Printf("Password for %s has been reset", email)
		return
	}

	admin := &model.User{
		Email:    email,
		Password: string(hashed),
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user created: %s", email)
}
