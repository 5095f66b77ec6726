// Command import-approvals bulk-loads approval decisions from a JSON array of
// {"review_id","approved","channel","listing_id"} objects.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/shared"
	mysqlrepo "flex_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	file := flag.String("file", "approvals.json", "path to a JSON array of approval decisions")
	workers := flag.Int("workers", cfg.ImportWorkers, "concurrent writes")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read input failed")
	}
	var reqs []app.ApproveRequest
	if err := json.Unmarshal(raw, &reqs); err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("decode input failed")
	}

	log.Info().
		Str("file", *file).
		Int("workers", *workers).
		Int("decisions", len(reqs)).
		Msg("approval import starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}

	failed, err := app.NewApprovalService(repo).Import(ctx, reqs, *workers)
	if err != nil {
		log.Error().Err(err).Int("failed", failed).Msg("approval import interrupted")
		os.Exit(1)
	}
	log.Info().
		Int("imported", len(reqs)-failed).
		Int("failed", failed).
		Msg("approval import completed")
	if failed > 0 {
		os.Exit(2)
	}
}
