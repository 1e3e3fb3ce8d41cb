package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/pinswap/api/cmd/app"
)

// @contact.name   PinSwap
// @contact.email  support@pinswap.local
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
