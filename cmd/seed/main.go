package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"reqflow/branch"
	"reqflow/config"
	"reqflow/db"
)

// defaultBranches mirrors the administrative seed set.
var defaultBranches = []string{"Surabaya", "Sidoarjo", "Gresik"}

func main() {
	log := logrus.New()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, config.DatabaseConfig{DSN: dsn})
	if err != nil {
		log.WithError(err).Fatal("bootstrap database pool")
	}
	defer pool.Close()

	svc := branch.NewService(branch.NewRepository(pool))
	for _, name := range defaultBranches {
		created, err := svc.Create(ctx, name)
		if err != nil {
			log.WithError(err).WithField("branch", name).Fatal("seed branch")
		}
		log.WithFields(logrus.Fields{"id": created.ID, "name": created.Name}).Info("seeded branch")
	}
}
