package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	categoryStore "github.com/MrJamesThe3rd/pocketbook/internal/category/store"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/database"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	pocketbookHttp "github.com/MrJamesThe3rd/pocketbook/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/importcsv"
	txHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/logging"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, err := logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.DB.MigrateOnStart {
		if err := database.Migrate(db); err != nil {
			return err
		}

		slog.Info("database schema up to date")
	}

	var (
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db), categoryService)
	)

	var (
		categoryH    = categoryHandler.NewHandler(categoryService)
		transactionH = txHandler.NewHandler(transactionService)
		importH      = importHandler.NewHandler(importer.NewParser(), transactionService)
		exportH      = exportHandler.NewHandler(export.NewService(transactionService))
	)

	router := pocketbookHttp.New(
		pocketbookHttp.Options{AllowedOrigins: cfg.Server.AllowedOrigins},
		categoryH, transactionH, importH, exportH,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server", "timeout", cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
