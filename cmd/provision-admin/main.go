// Copyright (c) 2026 Sodalis. All rights reserved.

// Command provision-admin bootstraps the initial super administrator account.
//
// # Usage
//
//	DATABASE_URL=postgres://... provision-admin \
//	    -username root -email admin@example.org \
//	    -password 'secret' -display-name 'Site Admin' -plan 'Titular'
//
// Intended to run at most once per deployment. It performs no check that an
// administrator already exists; rerunning with the same username fails on
// the uniqueness constraint.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sodalis/api/internal/platform/config"
	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/migration"
	pgstore "github.com/sodalis/api/internal/platform/postgres"
	"github.com/sodalis/api/internal/users/auth"
)

func main() {
	var (
		username    = flag.String("username", "", "administrator username (required)")
		email       = flag.String("email", "", "administrator email (required)")
		password    = flag.String("password", "", "administrator password (required)")
		displayName = flag.String("display-name", "", "administrator display name")
		planName    = flag.String("plan", "", "membership plan to attach")
		runMigrate  = flag.Bool("migrate", false, "run pending migrations before provisioning")
	)
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName))

	if *username == "" || *email == "" || *password == "" {
		log.Error("username, email and password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("connect to postgres failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if *runMigrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			log.Error("run migrations failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// No session store: provisioning never touches Redis.
	service := auth.NewService(auth.NewPrincipalRepository(pool), nil, log)

	principal, err := service.ProvisionInitialAdministrator(ctx, auth.ProvisionInput{
		Username:    *username,
		Email:       *email,
		Password:    *password,
		DisplayName: *displayName,
		PlanName:    *planName,
	})
	if err != nil {
		log.Error("provision administrator failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("administrator provisioned",
		slog.String("user_id", principal.ID),
		slog.String("username", principal.Username),
		slog.String("role", string(principal.Role)),
	)
}
