package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pocketbook/internal/auth"
	"pocketbook/internal/category"
	categoryStore "pocketbook/internal/category/store"
	"pocketbook/internal/config"
	"pocketbook/internal/database"
	pocketbookHttp "pocketbook/internal/http"
	authHandler "pocketbook/internal/http/auth"
	categoryHandler "pocketbook/internal/http/category"
	txHandler "pocketbook/internal/http/transaction"
	userHandler "pocketbook/internal/http/user"
	"pocketbook/internal/transaction"
	txStore "pocketbook/internal/transaction/store"
	"pocketbook/internal/user"
	userStore "pocketbook/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Bootstrap(ctx, db); err != nil {
		slog.Error("failed to bootstrap schema", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		userService        = user.NewService(userStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
	)

	var (
		authH        = authHandler.NewHandler(userService, tokens)
		userH        = userHandler.NewHandler(userService)
		transactionH = txHandler.NewHandler(transactionService)
		categoryH    = categoryHandler.NewHandler(categoryService)
	)

	router := pocketbookHttp.New(tokens, authH, userH, transactionH, categoryH, []string{"*"})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
