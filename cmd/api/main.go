package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/hearthstone/backend/internal/config"
	"github.com/zhouzirui/hearthstone/backend/internal/handler"
	"github.com/zhouzirui/hearthstone/backend/internal/handler/page"
	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
	"github.com/zhouzirui/hearthstone/backend/internal/service/lookup"
	"github.com/zhouzirui/hearthstone/backend/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The collection must be in memory before anything is served.
	items, err := card.LoadFile(cfg.Cards.DataFile)
	if err != nil {
		log.Fatalf("failed to load cards: %v", err)
	}
	store := card.NewMemoryStore(items)
	log.Printf("loaded %d cards from %s (dataset %s)", store.Len(), cfg.Cards.DataFile, store.Version())

	lookupSvc := lookup.NewService(store, cfg.Cards.LookupOptions())
	opts := lookupSvc.Options()
	log.Printf("match policies: name=%s id=%s", opts.NamePolicy, opts.IDPolicy)

	pages, err := page.New(lookupSvc, web.Templates)
	if err != nil {
		log.Fatalf("failed to initialize pages: %v", err)
	}

	router := handler.NewRouter(store, lookupSvc, pages, cfg.Cards.DefaultLimit)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Hearthstone card API listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
