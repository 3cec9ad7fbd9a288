package main

import (
	"flag"
	"log"
	"os"

	"github.com/Skotchmaster/freshcart/internal/config"
	"github.com/Skotchmaster/freshcart/internal/migrate"
)

func main() {
	steps := flag.Int("steps", 0, "number of migrations to roll back with down (0 = all)")
	flag.Parse()

	cfg := config.Load()
	config.MustHave(map[string]string{"DATABASE_URL": cfg.DatabaseURL})
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	switch cmd {
	case "up":
		if err := migrate.Up(cfg.DatabaseURL); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Println("migrations applied")
	case "down":
		if err := migrate.Down(cfg.DatabaseURL, *steps); err != nil {
			logger.Fatalf("roll back migrations: %v", err)
		}
		logger.Println("migrations rolled back")
	case "version":
		v, dirty, err := migrate.Version(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("read version: %v", err)
		}
		logger.Printf("version %d dirty=%t", v, dirty)
	default:
		logger.Fatalf("unknown command %q (want up, down or version)", cmd)
	}
}
