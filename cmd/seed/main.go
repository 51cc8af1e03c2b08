package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/complysort/complysort/internal/catalog"
	"github.com/complysort/complysort/internal/config"
	"github.com/complysort/complysort/internal/database"
	"github.com/complysort/complysort/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("✓ Database migrated successfully")

	// Seed the default framework catalog, skipping names already present
	seeded := 0
	for _, fw := range catalog.Defaults() {
		var existing models.Framework
		if err := db.Where("name = ?", fw.Name).First(&existing).Error; err == nil {
			continue
		}
		fw.Enabled = true
		if err := db.Create(&fw).Error; err != nil {
			log.Fatalf("Failed to seed framework %s: %v", fw.Name, err)
		}
		seeded++
	}
	fmt.Printf("✓ Seeded %d frameworks\n", seeded)

	db.Where(models.Setting{Key: models.SettingCatalogSeededAt}).
		Assign(models.Setting{Value: time.Now().Format(time.RFC3339), Category: "catalog"}).
		FirstOrCreate(&models.Setting{})

	// Seed the admin user when credentials are provided
	adminEmail := os.Getenv("CS_ADMIN_EMAIL")
	adminPassword := os.Getenv("CS_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		fmt.Println("✓ Skipping admin user (set CS_ADMIN_EMAIL and CS_ADMIN_PASSWORD to create one)")
		return
	}

	var existing models.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		fmt.Println("✓ Admin user already exists")
		return
	}

	admin := models.User{
		Email:   adminEmail,
		Name:    "Administrator",
		Role:    "admin",
		Enabled: true,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("✓ Created admin user %s\n", adminEmail)
}
