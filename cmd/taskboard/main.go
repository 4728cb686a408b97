// @title			Taskboard API
// @version		1.0
// @description	Team task tracker with activity logs, assignment notices and dashboards.
// @BasePath		/api
// @securityDefinitions.apikey	CookieAuth
// @in							cookie
// @name						token

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlprog/taskboard/internal/config"
	"github.com/mtlprog/taskboard/internal/handler"
	"github.com/mtlprog/taskboard/internal/logger"
	"github.com/mtlprog/taskboard/internal/middleware"
	"github.com/mtlprog/taskboard/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	config.LoadEnv()

	app := &cli.App{
		Name:  "taskboard",
		Usage: "Team task tracker backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Value:   config.DefaultStore,
				Usage:   "Store backend (postgres, mongo, memory)",
				EnvVars: []string{"STORE"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "mongodb-uri",
				Value:   config.DefaultMongoURI,
				Usage:   "MongoDB connection string",
				EnvVars: []string{"MONGODB_URI"},
			},
			&cli.StringFlag{
				Name:    "mongodb-database",
				Value:   config.DefaultMongoDatabase,
				Usage:   "MongoDB database name",
				EnvVars: []string{"MONGODB_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "jwt-secret",
				Usage:   "Secret used to sign and verify session tokens",
				EnvVars: []string{"JWT_SECRET"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations (PostgreSQL) or create indexes (MongoDB)",
				Action: runMigrate,
			},
			{
				Name:   "empty-trash",
				Usage:  "Permanently delete every trashed task",
				Action: runEmptyTrash,
			},
			{
				Name:  "token",
				Usage: "Issue a session token for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user-id",
						Aliases:  []string{"u"},
						Usage:    "User ID to issue the token for",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Value: config.DefaultTokenTTL,
						Usage: "Token lifetime",
					},
				},
				Action: runToken,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	secret := c.String("jwt-secret")
	if secret == "" {
		return errors.New("jwt secret is required (--jwt-secret or JWT_SECRET)")
	}

	st, err := openStores(ctx, c)
	if err != nil {
		return err
	}
	defer st.close()

	if err := st.migrate(ctx); err != nil {
		return err
	}

	taskService := service.NewTaskService(st.tasks, st.notices, st.users)
	authMiddleware := middleware.NewAuthMiddleware(st.users, secret)
	h := handler.New(taskService, authMiddleware, st.ping)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           middleware.RequestID(middleware.AccessLog(mux)),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port, "store", st.name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context

	st, err := openStores(ctx, c)
	if err != nil {
		return err
	}
	defer st.close()

	return st.migrate(ctx)
}

func runEmptyTrash(c *cli.Context) error {
	ctx := c.Context

	st, err := openStores(ctx, c)
	if err != nil {
		return err
	}
	defer st.close()

	taskService := service.NewTaskService(st.tasks, st.notices, st.users)

	deleted, err := taskService.DeleteRestoreTask(ctx, nil, "", service.ActionDeleteAll)
	if err != nil {
		return fmt.Errorf("failed to empty trash: %w", err)
	}

	slog.Info("trash emptied", "deleted", deleted)
	return nil
}

func runToken(c *cli.Context) error {
	secret := c.String("jwt-secret")
	if secret == "" {
		return errors.New("jwt secret is required (--jwt-secret or JWT_SECRET)")
	}

	token, err := middleware.IssueToken(secret, c.String("user-id"), c.Duration("ttl"))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, token)
	return nil
}
