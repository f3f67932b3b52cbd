package database

import (
	"context"
	"log"
	"time"

	"linkfolio/backend/config"
)

const connectTimeout = 5 * time.Second

// Open picks the storage backend once at start-up and returns it for
// explicit injection into the handlers. A mongo or postgres backend that
// cannot be reached within the connect timeout is logged and replaced by
// the in-memory store, so the process always comes up.
func Open(ctx context.Context, cfg config.Config) Storage {
	switch cfg.StorageBackend {
	case "mongo":
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		store, err := NewMongoStorage(cctx, cfg.MongoURI)
		if err != nil {
			log.Printf("mongo unavailable, using in-memory storage: %v", err)
			return NewMemStorage()
		}
		log.Printf("storage backend: mongo")
		return store
	case "postgres":
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		store, err := NewPGStorage(cctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("postgres unavailable, using in-memory storage: %v", err)
			return NewMemStorage()
		}
		log.Printf("storage backend: postgres")
		return store
	default:
		log.Printf("storage backend: memory")
		return NewMemStorage()
	}
}
