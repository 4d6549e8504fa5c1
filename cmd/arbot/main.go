package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/config"
	loggerpkg "github.com/solarbx/mevcore/internal/logger"
	"github.com/solarbx/mevcore/internal/mevtx"
	"github.com/solarbx/mevcore/internal/pipeline"
	"github.com/solarbx/mevcore/internal/relayer"
	"github.com/solarbx/mevcore/internal/rpcclient"
	"github.com/solarbx/mevcore/internal/store/postgres"
	"github.com/solarbx/mevcore/internal/wallet"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := loggerpkg.New(loggerpkg.DefaultConfig())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(ctx, cfg, appLogger); err != nil && ctx.Err() == nil {
		appLogger.Fatal("fatal error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) error {
	st, err := postgres.New(cfg.DatabaseURL, appLogger)
	if err != nil {
		return err
	}
	if err := st.RunMigrations(); err != nil {
		return err
	}

	w, err := wallet.Load(cfg.WalletFilePath)
	if err != nil {
		return err
	}

	rpc := rpcclient.New(cfg.SolanaRPCURL, appLogger)

	rl, err := relayer.New(ctx, cfg.JitoEndpoint, cfg.JitoAuthToken, appLogger)
	if err != nil {
		return err
	}

	builder := mevtx.New()

	env, err := pipeline.Build(cfg, appLogger, rpc, st, rl, w, builder, "arbot_trace.jsonl")
	if err != nil {
		return err
	}

	stages := pipeline.Wire(ctx, env)

	appLogger.Info("arbot started",
		zap.String("wallet", w.String()),
		zap.Strings("desired_mints", cfg.DesiredMints),
		zap.Bool("enable_send_tx", cfg.EnableSendTx))

	runErr := stages.Run(ctx)

	appLogger.Info("shutting down, draining stages", zap.Duration("deadline", cfg.ShutdownDrain))
	stages.Shutdown(cfg.ShutdownDrain)

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}
