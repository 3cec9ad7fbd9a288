package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Skotchmaster/freshcart/internal/config"
	"github.com/Skotchmaster/freshcart/internal/db"
	"github.com/Skotchmaster/freshcart/internal/seed"
)

func main() {
	cfg := config.Load()
	config.MustHave(map[string]string{"DATABASE_URL": cfg.DatabaseURL})
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer db.Close(gdb)

	admin := seed.Admin{
		Name:     config.EnvDefault("SEED_ADMIN_NAME", "Admin"),
		Email:    config.EnvDefault("SEED_ADMIN_EMAIL", "admin@freshcart.local"),
		Phone:    config.EnvDefault("SEED_ADMIN_PHONE", "9000000000"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
	config.MustHave(map[string]string{"SEED_ADMIN_PASSWORD": admin.Password})

	if err := seed.Apply(ctx, gdb, admin); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
