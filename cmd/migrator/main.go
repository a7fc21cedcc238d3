package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/YusovID/journal-review-service/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

type MigrationCfg struct {
	ConnStr         string
	MigrationsPath  string
	MigrationsTable string
}

func main() {
	_ = godotenv.Load()

	migration, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m, err := migrate.New("file://"+migration.MigrationsPath, migration.ConnStr)
	if err != nil {
		log.Fatalf("can't create new migration: %v", err)
	}

	var cmd string
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "down":
		if err := down(m); err != nil {
			log.Fatal(err)
		}

		fmt.Println("migrations rolled back successfully")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("can't read migration version: %v", err)
		}

		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	case "up":
		fallthrough
	default:
		if err := up(m); err != nil {
			log.Fatal(err)
		}

		fmt.Println("migrations applied successfully")
	}
}

func Load() (*MigrationCfg, error) {
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		return nil, fmt.Errorf("MIGRATIONS_PATH is not set")
	}

	migrationsTable := os.Getenv("MIGRATIONS_TABLE")
	if migrationsTable == "" {
		migrationsTable = "schema_migrations"
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	connStr, err := url.Parse(cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %v", err)
	}

	q := connStr.Query()
	q.Set("x-migrations-table", migrationsTable)
	connStr.RawQuery = q.Encode()

	return &MigrationCfg{
		ConnStr:         connStr.String(),
		MigrationsPath:  migrationsPath,
		MigrationsTable: migrationsTable,
	}, nil
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no new migrations to apply")
			return nil
		}

		return fmt.Errorf("can't do migrations: %v", err)
	}

	return nil
}

func down(m *migrate.Migrate) error {
	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("no migrations to roll back")
		}

		return fmt.Errorf("can't down migrations: %v", err)
	}

	return nil
}
