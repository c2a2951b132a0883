// Package main is the entry point for the translation-service application.
//
// @title           Translation Service API
// @version         1.0.0
// @description     API for managing locales, translation keys and their values.
//
//	Translations are tagged, searchable, revisioned on every change and exported as flat
//	key/value maps for client applications.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/translation-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Access token issued by /api/auth/login, as "Bearer <token>".
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Static API key for machine clients. Accepted when API_KEYS is set.
//
// @tag.name        Translations
// @tag.description Translation keys, values, search and export
//
// @tag.name        Locales
// @tag.description Locale management
//
// @tag.name        Users
// @tag.description Registered users
//
// @tag.name        Logs
// @tag.description Persisted request and audit log
//
// @tag.name        Auth
// @tag.description Authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/translation-service/docs" // swagger docs
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
