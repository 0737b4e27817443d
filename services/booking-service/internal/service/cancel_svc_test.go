package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/domain"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/repository"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, key)
	return nil
}

func (f *fakePublisher) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.events {
		if k == key {
			return true
		}
	}
	return false
}

func newCancelFixture(t *testing.T) (*CancelSvc, *repository.ReservationRepo, *fakeMailer, *fakePublisher) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	repo := repository.NewReservationRepo(gdb)
	require.NoError(t, repo.Migrate())

	mail := &fakeMailer{failFor: map[string]error{}}
	pub := &fakePublisher{}
	club := ClubInfo{Name: "Club de Golf Papudo", Email: "club@x.cl", WebURL: "https://club.example"}
	return NewCancelSvc(repo, mail, pub, club, time.Second), repo, mail, pub
}

func seedReservation(t *testing.T, repo *repository.ReservationRepo, players ...domain.Player) *domain.Reservation {
	t.Helper()
	res := &domain.Reservation{
		ID:        "court_1-2025-07-24-1930",
		CourtID:   "court_1",
		Date:      "2025-07-24",
		StartTime: "19:30",
		Players:   players,
	}
	require.NoError(t, repo.Create(context.Background(), res))
	return res
}

func TestCancelEndToEnd(t *testing.T) {
	svc, repo, mail, pub := newCancelFixture(t)
	ctx := context.Background()
	seedReservation(t, repo,
		domain.Player{Name: "A", Email: "a@x.cl"},
		domain.Player{Name: "B", Email: "b@x.cl"},
		domain.Player{Name: "C", Email: "c@x.cl"},
	)

	result, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "b@x.cl")
	require.NoError(t, err)
	assert.Equal(t, "court_1-2025-07-24-1930", result.BookingID)
	assert.True(t, result.Removed)
	assert.False(t, result.Deleted)
	assert.Equal(t, 2, result.Remaining)
	assert.Equal(t, 2, result.Notified)
	assert.Equal(t, 0, result.Failed)

	stored, err := repo.ByID(ctx, "court_1-2025-07-24-1930")
	require.NoError(t, err)
	require.Len(t, stored.Players, 2)
	assert.Equal(t, "A", stored.Players[0].Name)
	assert.Equal(t, "C", stored.Players[1].Name)
	assert.Equal(t, domain.StatusIncomplete, stored.Status)

	assert.ElementsMatch(t, []string{"a@x.cl", "c@x.cl"}, mail.recipients())
	assert.True(t, pub.has("booking.cancelled"))
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, repo, _, _ := newCancelFixture(t)
	ctx := context.Background()
	seedReservation(t, repo,
		domain.Player{Name: "A", Email: "a@x.cl"},
		domain.Player{Name: "B", Email: "b@x.cl"},
	)

	first, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "b@x.cl")
	require.NoError(t, err)
	assert.True(t, first.Removed)

	second, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "b@x.cl")
	require.NoError(t, err)
	assert.False(t, second.Removed)
	assert.Equal(t, first.Remaining, second.Remaining)

	stored, err := repo.ByID(ctx, "court_1-2025-07-24-1930")
	require.NoError(t, err)
	assert.Len(t, stored.Players, 1)
}

func TestCancelLastPlayerDeletes(t *testing.T) {
	svc, repo, _, pub := newCancelFixture(t)
	ctx := context.Background()
	seedReservation(t, repo, domain.Player{Name: "A", Email: "a@x.cl"})

	result, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "a@x.cl")
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Equal(t, 0, result.Notified)
	assert.True(t, pub.has("booking.deleted"))

	// no longer resolvable by either strategy
	_, err = svc.Cancel(ctx, "court_1-2025-07-24-1930", "a@x.cl")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelFallbackResolution(t *testing.T) {
	svc, repo, _, _ := newCancelFixture(t)
	ctx := context.Background()

	// stored under a legacy document id, resolvable only via the slot tuple
	res := &domain.Reservation{
		ID: "fs-doc-8f3a1b", CourtID: "court_1", Date: "2025-07-24", StartTime: "19:30",
		Players: domain.Players{
			{Name: "A", Email: "a@x.cl"},
			{Name: "B", Email: "b@x.cl"},
		},
	}
	require.NoError(t, repo.Create(ctx, res))

	result, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "b@x.cl")
	require.NoError(t, err)
	assert.True(t, result.Removed)

	stored, err := repo.ByID(ctx, "fs-doc-8f3a1b")
	require.NoError(t, err)
	assert.Len(t, stored.Players, 1)
}

func TestCancelDuplicateSlotPicksNewestAndAlerts(t *testing.T) {
	svc, repo, _, pub := newCancelFixture(t)
	ctx := context.Background()

	older := &domain.Reservation{
		ID: "fs-doc-old", CourtID: "court_1", Date: "2025-07-24", StartTime: "19:30",
		Players:      domain.Players{{Name: "Old", Email: "old@x.cl"}},
		LastModified: time.Now().UTC().Add(-time.Hour),
	}
	newer := &domain.Reservation{
		ID: "fs-doc-new", CourtID: "court_1", Date: "2025-07-24", StartTime: "19:30",
		Players:      domain.Players{{Name: "New", Email: "new@x.cl"}, {Name: "Mate", Email: "mate@x.cl"}},
		LastModified: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	result, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "new@x.cl")
	require.NoError(t, err)
	assert.True(t, result.Removed)
	assert.True(t, pub.has("booking.duplicate"))

	// the older duplicate was left untouched
	stored, err := repo.ByID(ctx, "fs-doc-old")
	require.NoError(t, err)
	assert.Len(t, stored.Players, 1)
}

func TestCancelNotFoundPerformsNoWrites(t *testing.T) {
	svc, repo, mail, _ := newCancelFixture(t)
	ctx := context.Background()
	seedReservation(t, repo, domain.Player{Name: "A", Email: "a@x.cl"})

	_, err := svc.Cancel(ctx, "court_9-2099-01-01-0000", "a@x.cl")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, mail.recipients())

	stored, err := repo.ByID(ctx, "court_1-2025-07-24-1930")
	require.NoError(t, err)
	assert.EqualValues(t, 0, stored.Version)
}

func TestCancelMalformedIDIsNotFound(t *testing.T) {
	svc, _, _, _ := newCancelFixture(t)
	_, err := svc.Cancel(context.Background(), "garbage", "a@x.cl")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNotificationSkipsPlayersWithoutEmail(t *testing.T) {
	svc, repo, mail, _ := newCancelFixture(t)
	ctx := context.Background()
	seedReservation(t, repo,
		domain.Player{Name: "A", Email: "a@x.cl"},
		domain.Player{Name: "Sin Correo", Email: ""},
		domain.Player{Name: "B", Email: "b@x.cl"},
	)

	result, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "b@x.cl")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Remaining)
	// exactly one attempt: the emailless player is silently skipped
	assert.Equal(t, []string{"a@x.cl"}, mail.recipients())
	assert.Equal(t, 1, result.Notified)
}

func TestNotificationFailureDoesNotFailCancel(t *testing.T) {
	svc, repo, mail, pub := newCancelFixture(t)
	ctx := context.Background()
	mail.failFor["a@x.cl"] = errors.New("smtp: mailbox unavailable")
	seedReservation(t, repo,
		domain.Player{Name: "A", Email: "a@x.cl"},
		domain.Player{Name: "B", Email: "b@x.cl"},
		domain.Player{Name: "C", Email: "c@x.cl"},
	)

	result, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "c@x.cl")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Notified)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, pub.has("emails.failed"))

	// the removal is authoritative regardless of notification outcomes
	stored, err := repo.ByID(ctx, "court_1-2025-07-24-1930")
	require.NoError(t, err)
	assert.Len(t, stored.Players, 2)
}

func TestCancelUnnamedDeparting(t *testing.T) {
	svc, repo, mail, _ := newCancelFixture(t)
	ctx := context.Background()
	seedReservation(t, repo,
		domain.Player{Name: "", Email: "anon@x.cl"},
		domain.Player{Name: "B", Email: "b@x.cl"},
	)

	_, err := svc.Cancel(ctx, "court_1-2025-07-24-1930", "anon@x.cl")
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].Body, UnnamedPlayer)
}
