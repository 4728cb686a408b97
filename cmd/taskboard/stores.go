package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/taskboard/internal/config"
	"github.com/mtlprog/taskboard/internal/database"
	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/handler"
	"github.com/mtlprog/taskboard/internal/repository"
	"github.com/mtlprog/taskboard/internal/repository/memory"
	"github.com/mtlprog/taskboard/internal/repository/mongodb"
	"github.com/mtlprog/taskboard/internal/service"
)

// stores bundles the backend selected with --store.
type stores struct {
	name    string
	tasks   service.TaskStore
	notices service.NoticeStore
	users   service.UserStore
	ping    handler.Pinger
	migrate func(ctx context.Context) error
	close   func()
}

func openStores(ctx context.Context, c *cli.Context) (*stores, error) {
	switch name := c.String("store"); name {
	case config.StorePostgres:
		return openPostgres(ctx, c.String("database-url"))
	case config.StoreMongo:
		return openMongo(ctx, c.String("mongodb-uri"), c.String("mongodb-database"))
	case config.StoreMemory:
		return openMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want %s, %s or %s)",
			name, config.StorePostgres, config.StoreMongo, config.StoreMemory)
	}
}

func openPostgres(ctx context.Context, databaseURL string) (*stores, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required for the %s store", config.StorePostgres)
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tasks := repository.NewTaskRepository(db.Pool())

	return &stores{
		name:    config.StorePostgres,
		tasks:   tasks,
		notices: repository.NewNoticeRepository(db.Pool()),
		users:   repository.NewUserRepository(db.Pool()),
		ping:    tasks,
		migrate: func(ctx context.Context) error {
			if err := database.RunMigrations(ctx, db.Pool()); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			return nil
		},
		close: db.Close,
	}, nil
}

func openMongo(ctx context.Context, uri, name string) (*stores, error) {
	m, err := database.NewMongo(ctx, uri, name)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &stores{
		name:    config.StoreMongo,
		tasks:   mongodb.NewTaskRepository(m.Database()),
		notices: mongodb.NewNoticeRepository(m.Database()),
		users:   mongodb.NewUserRepository(m.Database()),
		ping:    m,
		migrate: func(ctx context.Context) error {
			if err := m.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("failed to ensure indexes: %w", err)
			}
			return nil
		},
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.Close(ctx)
		},
	}, nil
}

// openMemory returns process-local stores seeded with one admin user.
// Data is lost on exit.
func openMemory() *stores {
	tasks := memory.NewTaskStore()
	users := memory.NewUserStore(domain.User{
		ID:        config.MemoryAdminID,
		Name:      "Administrator",
		Role:      "admin",
		IsAdmin:   true,
		IsActive:  true,
		CreatedAt: time.Now(),
	})

	slog.Warn("using in-memory store; data will not survive restarts", "admin_id", config.MemoryAdminID)

	return &stores{
		name:    config.StoreMemory,
		tasks:   tasks,
		notices: memory.NewNoticeStore(),
		users:   users,
		ping:    tasks,
		migrate: func(context.Context) error { return nil },
		close:   func() {},
	}
}
