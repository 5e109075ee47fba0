package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jtheoden/papuenvios-sub001/internal/config"
	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository/postgres"
)

func main() {
	nameFlag := flag.String("name", "", "Admin display name")
	emailFlag := flag.String("email", "", "Admin email")
	apiKeyFlag := flag.String("api-key", "", "API key for this admin (save it; it cannot be retrieved later)")
	flag.Parse()

	name := strings.TrimSpace(*nameFlag)
	email := strings.TrimSpace(*emailFlag)
	apiKey := strings.TrimSpace(*apiKeyFlag)

	if name == "" || email == "" || apiKey == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin/main.go --name \"Admin Name\" --email admin@example.com --api-key \"your-api-key\"")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	// Cost 10 is enough for API keys
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	user := &domain.AdminUser{
		Name:         name,
		Email:        email,
		APIKeyHash:   string(hash),
		APIKeyLookup: postgres.APIKeyLookupHash(apiKey),
		IsAdmin:      true,
		IsActive:     true,
	}

	if err := repos.AdminUser.Create(context.Background(), user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin user created: %s (%s)\n", user.ID, user.Email)
}
