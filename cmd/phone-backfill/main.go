package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"phonenumber_service/internal/backfill"
	"phonenumber_service/platform/config"
	"phonenumber_service/platform/db"
	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := cfg.ValidateBackfill(); err != nil {
		panic("invalid backfill config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting phone backfill",
		"table", cfg.GetBackfillTable(),
		"column", cfg.GetBackfillColumn(),
		"region", cfg.GetPhoneDefaultRegion(),
		"format", cfg.GetPhoneOutputFormat().String(),
		"dryRun", cfg.IsBackfillDryRun(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo, err := backfill.NewRepository(pool, cfg.GetBackfillTable(), cfg.GetBackfillColumn())
	if err != nil {
		log.Error("invalid backfill target", "error", err)
		return
	}

	engine := phone.NewEngine()
	codec := phone.NewCodec(engine,
		phone.WithCodecRegion(cfg.GetPhoneDefaultRegion()),
		phone.WithOutputFormat(cfg.GetPhoneOutputFormat()),
	)

	svc := backfill.NewService(repo, engine, codec, cfg.GetBackfillBatchSize(), log,
		backfill.WithDryRun(cfg.IsBackfillDryRun()),
	)

	result, err := svc.Run(ctx)
	if err != nil {
		log.Error("phone backfill stopped", "error", err, "scanned", result.Scanned)
		return
	}

	log.Info("phone backfill complete",
		"scanned", result.Scanned,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
}
