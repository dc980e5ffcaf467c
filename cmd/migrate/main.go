package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"librarycatalog/internal/config"
	"librarycatalog/internal/platform/logger"
	"librarycatalog/internal/platform/postgres"
)

var errUnknownCommand = errors.New("unknown command, use: up, down, status, create")

var migrations = map[string]func(db *sql.DB, dir string, opts ...goose.OptionsFunc) error{
	"up":     goose.Up,
	"down":   goose.Down,
	"status": goose.Status,
}

// checkCommand validates the flags before anything touches the database.
func checkCommand(command, name string) error {
	switch {
	case command == "create" && name == "":
		return errors.New("name is required for 'create' command")
	case command == "create":
		return nil
	}
	if _, ok := migrations[command]; !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
	return nil
}

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	log := logger.New().Console().MustMake().Logger

	if err := checkCommand(*command, *name); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("invalid arguments")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if *command == "create" {
		if err := goose.Create(nil, cfg.MigrationsDir, *name, "sql"); err != nil {
			log.Fatal().Err(err).Msg("failed to create migration")
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	dsn, err := cfg.RequireDSN()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot migrate without a database")
	}

	if err := run(dsn, cfg.MigrationsDir, *command); err != nil {
		log.Fatal().Err(err).Str("command", *command).Str("dsn", config.RedactDSN(dsn)).Msg("migration failed")
	}
	log.Info().Str("command", *command).Msg("migrations done")
}

func run(dsn, dir, command string) error {
	pool, err := postgres.Open(context.Background(), dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return migrations[command](db, dir)
}
