package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	app2 "github.com/IT-Nick/careerpath/internal/app"
	"github.com/IT-Nick/careerpath/internal/infra/config"
)

func main() {
	log.Println("app starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := app2.NewApp(ctx, config.Path())
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.ListenAndServeHTTP()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("shutdown: %v", err)
	}
	log.Println("app stopped")
}
