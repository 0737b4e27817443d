package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/domain"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/mailer"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/repository"
)

// EventPublisher is the slice of pkg/mq the services need; tests plug a fake.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// ClubInfo feeds the club-facing copy in emails and pages.
type ClubInfo struct {
	Name   string
	Email  string
	WebURL string
}

// UnnamedPlayer is the display fallback when the departing record carries no
// usable name.
const UnnamedPlayer = "Unnamed participant"

type CancelSvc struct {
	repo          *repository.ReservationRepo
	mail          mailer.Mailer
	pub           EventPublisher
	club          ClubInfo
	notifyTimeout time.Duration
}

func NewCancelSvc(repo *repository.ReservationRepo, mail mailer.Mailer, pub EventPublisher, club ClubInfo, notifyTimeout time.Duration) *CancelSvc {
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &CancelSvc{repo: repo, mail: mail, pub: pub, club: club, notifyTimeout: notifyTimeout}
}

// CancelResult summarizes one cancellation for the HTTP layer and the logs.
type CancelResult struct {
	BookingID string
	Removed   bool
	Deleted   bool
	Remaining int
	Notified  int
	Failed    int
}

// Cancel runs the whole workflow: resolve the booking id, remove the player
// (the authoritative write), then notify whoever remains. Notification
// failures never fail the cancellation; the state change already happened.
func (s *CancelSvc) Cancel(ctx context.Context, bookingID, playerEmail string) (*CancelResult, error) {
	res, err := s.resolve(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Resolve the departing display name before the list is filtered.
	departingName := UnnamedPlayer
	if p := res.PlayerByEmail(playerEmail); p != nil && p.Name != "" {
		departingName = p.Name
	}

	out, err := s.repo.RemovePlayer(ctx, res.ID, playerEmail)
	if err != nil {
		return nil, err
	}

	if out.Deleted {
		_ = s.pub.PublishJSON(ctx, "booking.deleted", map[string]any{
			"booking_id": bookingID, "player_email": playerEmail,
		})
	} else {
		_ = s.pub.PublishJSON(ctx, "booking.cancelled", map[string]any{
			"booking_id": bookingID, "player_email": playerEmail,
			"player_name": departingName, "remaining": len(out.Reservation.Players),
		})
	}

	notified, failed := s.notifyRemaining(ctx, &out.Reservation, departingName, playerEmail)
	if failed > 0 {
		_ = s.pub.PublishJSON(ctx, "emails.failed", map[string]any{
			"booking_id": bookingID, "failed": failed,
		})
	}

	return &CancelResult{
		BookingID: bookingID,
		Removed:   out.Removed,
		Deleted:   out.Deleted,
		Remaining: len(out.Reservation.Players),
		Notified:  notified,
		Failed:    failed,
	}, nil
}

// resolve maps a booking id to exactly one reservation: direct id match
// first, then the composite-id fallback against the slot tuple.
func (s *CancelSvc) resolve(ctx context.Context, bookingID string) (*domain.Reservation, error) {
	res, err := s.repo.ByID(ctx, bookingID)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	courtID, date, startTime, perr := domain.ParseBookingID(bookingID)
	if perr != nil {
		return nil, repository.ErrNotFound
	}
	matches, err := s.repo.BySlot(ctx, courtID, date, startTime)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	if len(matches) > 1 {
		// Duplicate rows for one slot is a data anomaly worth alerting on.
		// Pick the most recently modified (BySlot ordering) deterministically.
		log.Printf("[cancel] duplicate reservations for slot court=%s date=%s time=%s count=%d",
			courtID, date, startTime, len(matches))
		_ = s.pub.PublishJSON(ctx, "booking.duplicate", map[string]any{
			"court_id": courtID, "date": date, "start_time": startTime, "count": len(matches),
		})
	}
	return &matches[0], nil
}

type sendOutcome struct {
	email string
	err   error
}

// notifyRemaining fans out one email per remaining player that has a real
// address. Sends run concurrently with a per-recipient deadline and are
// gathered all-settled: a failed or slow recipient never cancels the rest.
func (s *CancelSvc) notifyRemaining(ctx context.Context, res *domain.Reservation, departingName, departingEmail string) (notified, failed int) {
	var targets []domain.Player
	var remainingNames []string
	for _, p := range res.Players {
		name := p.Name
		if name == "" {
			name = UnnamedPlayer
		}
		remainingNames = append(remainingNames, name)
		if p.Email == "" || p.Email == domain.PlaceholderEmail {
			continue
		}
		targets = append(targets, p)
	}
	if len(targets) == 0 {
		return 0, 0
	}

	body, err := mailer.RenderCancellation(mailer.CancellationData{
		DepartingName:  departingName,
		DepartingEmail: departingEmail,
		CourtName:      mailer.CourtName(res.CourtID),
		DateES:         mailer.FormatDateES(res.Date),
		TimeRange:      res.StartTime + " - " + mailer.EndTime(res.StartTime),
		RemainingNames: remainingNames,
		ClubName:       s.club.Name,
		ClubEmail:      s.club.Email,
		ClubWebURL:     s.club.WebURL,
	})
	if err != nil {
		log.Printf("[cancel] render cancellation mail: %v", err)
		return 0, len(targets)
	}
	subject := "Cambio en tu Reserva de Pádel - " + mailer.FormatDateES(res.Date)

	results := make(chan sendOutcome, len(targets))
	var wg sync.WaitGroup
	for _, p := range targets {
		wg.Add(1)
		go func(p domain.Player) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
			defer cancel()
			results <- sendOutcome{email: p.Email, err: s.mail.Send(sctx, p.Email, subject, body)}
		}(p)
	}
	wg.Wait()
	close(results)

	for r := range results {
		if r.err != nil {
			failed++
			log.Printf("[cancel] notify %s failed: %v", r.email, r.err)
			continue
		}
		notified++
	}
	return notified, failed
}
