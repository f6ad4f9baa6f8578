package app

import (
	"context"
	"fmt"
	"log"

	"github.com/IT-Nick/careerpath/internal/domain/repository/postgres"
	"github.com/IT-Nick/careerpath/internal/infra/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDatabase устанавливает подключение к базе данных.
// При database.auto_migrate создает недостающие таблицы.
func InitDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Println("Database schema is up to date")
	}

	log.Println("Database connected successfully!")
	return db, nil
}
