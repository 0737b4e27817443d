package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/clubgolfpapudo/reservas/pkg/config"
	"github.com/clubgolfpapudo/reservas/pkg/db"
	"github.com/clubgolfpapudo/reservas/pkg/obs"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/repository"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/service"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/sheets"
	thttp "github.com/clubgolfpapudo/reservas/services/user-service/internal/transport/http"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdown := obs.InitTracer("user-service")
	defer shutdown(context.Background())

	gdb := db.Open(cfg.PGReservasDSN)
	repo := repository.NewUserRepo(gdb)
	must(0, repo.Migrate())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := must(sheets.NewDirectory(ctx, cfg.GoogleCredsFile, cfg.UsersSheetID, cfg.UsersSheetRange))
	svc := service.NewUserSvc(repo, dir)

	// Interval sync is optional; most deployments call POST /sync/users from
	// the hosting scheduler instead.
	if cfg.SyncIntervalMin > 0 {
		go func() {
			t := time.NewTicker(time.Duration(cfg.SyncIntervalMin) * time.Minute)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					if _, err := svc.SyncFromSheet(ctx); err != nil {
						log.Printf("[users] scheduled sync failed: %v", err)
					}
				}
			}
		}()
	}

	r := gin.Default()
	thttp.NewServer(svc).Register(r)

	srv := &http.Server{Addr: cfg.UserHTTPAddr, Handler: r}
	go func() {
		log.Println("[users] http listening on", cfg.UserHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	_ = srv.Shutdown(sctx)
	log.Println("[users] stopped")
}
