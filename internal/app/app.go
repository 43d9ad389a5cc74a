package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/config"
	"github.com/debuggershut/booking/internal/logger"
	"github.com/debuggershut/booking/internal/migration"
	"github.com/debuggershut/booking/internal/storage/memory"
	"github.com/debuggershut/booking/internal/transport/cli"
	"github.com/debuggershut/booking/internal/transport/web"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			l.LogWarnf("Could not open log file %s: %v", cfg.LogFile, err.Error())
		} else {
			defer f.Close()

			l = logger.New(log.New(f, "", log.LstdFlags))
		}
	}

	catalog := memory.NewCatalog(memory.Config{L: l})
	ledger := memory.NewLedger(memory.Config{L: l})
	history := memory.NewHistory(memory.Config{L: l})

	if err := migration.Up(l, cfg, catalog, ledger); err != nil {
		return fmt.Errorf("seed stores: %w", err)
	}

	l.LogInfo("Seed data has been applied")

	bookManager := booking.New(l, catalog, ledger, history)

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeout),
		LivenessEndpoint:  cfg.Server.LivenessEndpoint,
	}

	srv, err := web.New(ctx, webConf, catalog, ledger, history)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	go func() {
		if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.LogErrorf("Failed to run http server: %v", err.Error())
		}
	}()

	l.LogInfo("Inspection API is running on %v:%v", webConf.Host, webConf.Port)

	term := cli.New(cli.Conf{
		L:         l,
		In:        os.Stdin,
		Out:       os.Stdout,
		HotelName: cfg.HotelName,
		Currency:  cfg.Currency,
	}, bookManager, catalog, ledger, history)

	if err := term.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cancel()

		return fmt.Errorf("run terminal: %w", err)
	}

	cancel()

	l.LogInfo("Application stopped gracefully")

	return nil
}
