package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/ecell/portal-api/cmd/app"
)

// @title           E-Cell Portal API
// @version         1.0
// @description     Member accounts, events and event registrations.
// @BasePath        /api/v1
//
// @contact.name   E-Cell Tech Team
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token returned by /auth/login or /auth/signup.
func main() {
	if err := app.Start(); err != nil {
		log.Fatalf("portal-api: %v", err)
	}
}
