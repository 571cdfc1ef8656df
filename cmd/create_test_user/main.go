package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/service"
	"tshort_dashboard/internal/store"

	redis "github.com/redis/go-redis/v9"
)

// Provisions a demo account through the real provisioner. Uses the redis
// backend when REDIS_ADDR is set, otherwise an in-memory store (dry run
// that prints the resulting tree).
func main() {
	cfg := config.Load()

	email := os.Getenv("TEST_USER_EMAIL")
	if email == "" {
		email = "vishan@gmail.com"
	}

	var backend store.Backend
	dryRun := false
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		backend = store.NewRedisBackend(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}))
	} else {
		backend = store.NewMemoryBackend()
		dryRun = true
	}

	st := store.NewClient(backend)
	accounts := service.NewAccountService(st, cfg)
	ctx := context.Background()

	id := service.Identity{UID: "test-uid-1", Email: email, Name: "Tester"}

	status, err := accounts.EnsureAccount(ctx, id)
	if err != nil {
		log.Fatalf("ensure account failed: %v", err)
	}
	log.Printf("account %s status=%s\n", email, status)

	if dryRun {
		acct, err := accounts.GetAccount(ctx, domain.OwnerKey(email))
		if err != nil {
			log.Fatalf("read back failed: %v", err)
		}
		out, _ := json.MarshalIndent(acct, "", "  ")
		log.Printf("dry run (no REDIS_ADDR); resulting tree:\n%s\n", out)
	}
}
