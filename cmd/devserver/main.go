package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/buildinfo"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/devserver"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("a", "localhost:3001", "address to listen on")
	secret := flag.String("k", "", "token signing key (random when empty)")
	flag.Parse()

	buildinfo.PrintBuildData(os.Stdout)

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if *secret == "" {
		*secret, err = common.MakeRandHexString(32)
		if err != nil {
			logger.Fatal("generate signing key", zap.Error(err))
		}
		logger.Info("using random signing key, tokens will not survive a restart")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           devserver.New(logger, []byte(*secret)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("dev backend listening", zap.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
