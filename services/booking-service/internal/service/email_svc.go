package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/domain"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/mailer"
)

// EmailSvc sends the confirmation mail a fresh booking fans out to its
// players. Booking creation itself lives in the client app; this side only
// receives the booking payload and mails everyone.
type EmailSvc struct {
	mail          mailer.Mailer
	pub           EventPublisher
	club          ClubInfo
	cancelBaseURL string
	sendTimeout   time.Duration
}

func NewEmailSvc(mail mailer.Mailer, pub EventPublisher, club ClubInfo, cancelBaseURL string, sendTimeout time.Duration) *EmailSvc {
	if sendTimeout <= 0 {
		sendTimeout = 5 * time.Second
	}
	return &EmailSvc{mail: mail, pub: pub, club: club, cancelBaseURL: cancelBaseURL, sendTimeout: sendTimeout}
}

// BookingEmailInput mirrors the payload the web app posts after creating a
// booking. TimeSlot keeps the client's legacy field name for the start time.
type BookingEmailInput struct {
	CourtID  string          `json:"courtNumber" binding:"required"`
	Date     string          `json:"date" binding:"required"`
	TimeSlot string          `json:"timeSlot" binding:"required"`
	Players  []domain.Player `json:"players" binding:"required"`
}

type PlayerSendResult struct {
	Player  string `json:"player"`
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SendConfirmations mails every player that has a real address, concurrently
// and all-settled; each player's outcome is independent. Returns the derived
// booking id alongside the per-player results.
func (s *EmailSvc) SendConfirmations(ctx context.Context, in BookingEmailInput) (string, []PlayerSendResult) {
	bookingID := domain.FormatBookingID(in.CourtID, in.Date, in.TimeSlot)

	var names []string
	for _, p := range in.Players {
		names = append(names, p.Name)
	}

	type job struct {
		idx    int
		player domain.Player
	}
	var jobs []job
	for i, p := range in.Players {
		if p.Email == "" || p.Email == domain.PlaceholderEmail {
			continue
		}
		jobs = append(jobs, job{idx: i, player: p})
	}

	results := make([]PlayerSendResult, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(slot int, j job) {
			defer wg.Done()
			results[slot] = s.sendOne(ctx, bookingID, in, j.idx, j.player, names)
		}(i, j)
	}
	wg.Wait()

	sent, failed := 0, 0
	for _, r := range results {
		if r.Success {
			sent++
		} else {
			failed++
		}
	}
	log.Printf("[emails] booking=%s sent=%d failed=%d", bookingID, sent, failed)
	_ = s.pub.PublishJSON(ctx, "emails.sent", map[string]any{
		"booking_id": bookingID, "sent": sent, "failed": failed,
	})
	return bookingID, results
}

func (s *EmailSvc) sendOne(ctx context.Context, bookingID string, in BookingEmailInput, idx int, p domain.Player, names []string) PlayerSendResult {
	out := PlayerSendResult{Player: p.Name, Email: p.Email}

	cancelURL := fmt.Sprintf("%s?id=%s&email=%s", s.cancelBaseURL, bookingID, url.QueryEscape(p.Email))
	body, err := mailer.RenderConfirmation(mailer.ConfirmationData{
		PlayerName:  p.Name,
		IsOrganizer: idx == 0,
		CourtName:   mailer.CourtName(in.CourtID),
		DateES:      mailer.FormatDateES(in.Date),
		TimeRange:   in.TimeSlot + " - " + mailer.EndTime(in.TimeSlot),
		PlayerNames: names,
		Count:       len(in.Players),
		Capacity:    domain.Capacity,
		CancelURL:   cancelURL,
		ClubName:    s.club.Name,
		ClubEmail:   s.club.Email,
		ClubWebURL:  s.club.WebURL,
	})
	if err != nil {
		out.Error = err.Error()
		return out
	}

	sctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	subject := "Reserva de Pádel Confirmada - " + mailer.FormatDateES(in.Date)
	if err := s.mail.Send(sctx, p.Email, subject, body); err != nil {
		log.Printf("[emails] send to %s failed: %v", p.Email, err)
		out.Error = err.Error()
		return out
	}
	out.Success = true
	return out
}
