// Package main provides a CLI tool for bootstrapping the database
// schema and optionally seeding demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"facturis/internal/infrastructure/storage/postgres"
	"facturis/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// Demo company; its series is the invoice numbering namespace
	companyTaxID := "RO11111111"

	var companyID int64
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM companies WHERE tax_id = $1`,
		companyTaxID,
	).Scan(&companyID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check demo company exists: %w", err)
	}
	if err == nil {
		log.Infow("demo company already exists", "company_id", companyID)
		return nil
	}

	err = pool.Pool.QueryRow(ctx, `
		INSERT INTO companies (name, tax_id, series)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "Rosia Demo SRL", companyTaxID, "ROS").Scan(&companyID)
	if err != nil {
		return fmt.Errorf("insert demo company: %w", err)
	}

	log.Infow("demo company created", "company_id", companyID, "series", "ROS")

	clients := []struct {
		name     string
		taxID    string
		address  string
		vatPayer bool
	}{
		{"Client Unu SRL", "RO22222222", "Str. Exemplu 1, Bucuresti", true},
		{"Client Doi PFA", "RO33333333", "Str. Exemplu 2, Cluj-Napoca", false},
	}

	for _, c := range clients {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO clients (company_id, name, tax_id, address, vat_payer)
			VALUES ($1, $2, $3, $4, $5)
		`, companyID, c.name, c.taxID, c.address, c.vatPayer)
		if err != nil {
			return fmt.Errorf("insert demo client %q: %w", c.name, err)
		}
		log.Infow("demo client created", "name", c.name)
	}

	return nil
}
