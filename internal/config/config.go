package config

import (
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment when the postgres store is used.
	DefaultDatabaseURL = ""

	// DefaultMongoURI is the MongoDB connection string used by the mongo store.
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultMongoDatabase is the MongoDB database name.
	DefaultMongoDatabase = "taskboard"

	// DefaultTokenTTL is the lifetime of issued session tokens.
	DefaultTokenTTL = 24 * time.Hour

	// MemoryAdminID is the admin user seeded into the memory store.
	MemoryAdminID = "admin"
)

// Store backends selectable with --store.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

// DefaultStore is the store backend used when none is configured.
const DefaultStore = StorePostgres

// LoadEnv loads variables from .env in the working directory, if present.
// Variables already set in the environment take precedence.
func LoadEnv() {
	_ = godotenv.Load(".env")
}
