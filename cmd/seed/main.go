package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noorjahan04/City-Backend/internal/config"
	"github.com/noorjahan04/City-Backend/internal/db"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

var starterCategories = []model.Category{
	{Name: "Roads", Description: "Potholes, broken pavements and road damage"},
	{Name: "Water", Description: "Water supply, leakage and drainage issues"},
	{Name: "Electricity", Description: "Street lights and power supply problems"},
	{Name: "Sanitation", Description: "Garbage collection and public cleanliness"},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set to seed the admin account")
	}

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	if err := seedAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	created := 0
	for _, category := range starterCategories {
		existing, err := categoryRepo.FindByName(ctx, category.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up category %q: %v", category.Name, err)
		}
		if existing != nil {
			continue
		}
		c := category
		if err := categoryRepo.Create(ctx, &c); err != nil {
			log.Fatalf("Failed to create category %q: %v", category.Name, err)
		}
		created++
	}
	log.Printf("Seed completed: %d new categories", created)
}

// seedAdmin creates the initial admin account. Idempotent: an existing
// account with the configured email is left untouched.
func seedAdmin(ctx context.Context, userRepo repository.UserRepository, email, password string) error {
	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		log.Printf("Admin account %s already exists, skipping", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsVerified:   true,
		IsApproved:   true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin account %s created", email)
	return nil
}
