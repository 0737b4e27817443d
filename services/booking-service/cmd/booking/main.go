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
	"github.com/clubgolfpapudo/reservas/pkg/mq"
	"github.com/clubgolfpapudo/reservas/pkg/obs"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/mailer"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/repository"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/service"
	thttp "github.com/clubgolfpapudo/reservas/services/booking-service/internal/transport/http"
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

	shutdown := obs.InitTracer("booking-service")
	defer shutdown(context.Background())

	gdb := db.Open(cfg.PGReservasDSN)
	repo := repository.NewReservationRepo(gdb)
	must(0, repo.Migrate())

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	club := service.ClubInfo{Name: cfg.ClubName, Email: cfg.ClubEmail, WebURL: cfg.ClubWebURL}
	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ClubName)
	notifyTimeout := time.Duration(cfg.NotifyTimeoutSec) * time.Second

	cancelSvc := service.NewCancelSvc(repo, mail, pub, club, notifyTimeout)
	emailSvc := service.NewEmailSvc(mail, pub, club, cfg.CancelBaseURL, notifyTimeout)

	r := gin.Default()
	thttp.NewServer(cancelSvc, emailSvc, club).Register(r)

	srv := &http.Server{Addr: cfg.BookingHTTPAddr, Handler: r}
	go func() {
		log.Println("[booking] http listening on", cfg.BookingHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Println("[booking] stopped")
}
