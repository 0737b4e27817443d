package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/domain"
)

var (
	ErrNotFound = errors.New("reservation not found")
	// ErrConflict means concurrent writers kept invalidating our version
	// token; the caller should treat this as a persistence failure.
	ErrConflict = errors.New("reservation modified concurrently")
)

const removeRetries = 3

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Reservation{})
}

func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	if res.Status == "" {
		res.Status = domain.StatusFor(len(res.Players))
	}
	if res.LastModified.IsZero() {
		res.LastModified = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepo) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// BySlot finds reservations matching the (court, date, startTime) tuple,
// newest write first. More than one row for a slot is a data anomaly the
// caller is expected to report; the ordering makes the pick deterministic.
func (r *ReservationRepo) BySlot(ctx context.Context, courtID, date, startTime string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ? AND start_time = ?", courtID, date, startTime).
		Order("last_modified DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveOutcome reports what a RemovePlayer write did to the row.
type RemoveOutcome struct {
	Reservation domain.Reservation // state after the write; zero players when Deleted
	Removed     bool               // the email actually matched a player
	Deleted     bool               // the row was deleted (last player left)
}

// RemovePlayer performs the removal as an atomic read-modify-write guarded
// by the reservation's version token, retrying on stale reads. Removing an
// email that matches nobody still refreshes the row (exactly one write per
// resolved reservation), so repeated clicks on a cancel link never error.
func (r *ReservationRepo) RemovePlayer(ctx context.Context, id, email string) (*RemoveOutcome, error) {
	for attempt := 0; attempt < removeRetries; attempt++ {
		var res domain.Reservation
		if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("read reservation: %w", err)
		}

		remaining := make(domain.Players, 0, len(res.Players))
		for _, p := range res.Players {
			if p.Email == email && p.Email != "" {
				continue
			}
			remaining = append(remaining, p)
		}
		removed := len(remaining) != len(res.Players)

		if len(remaining) == 0 {
			tx := r.db.WithContext(ctx).
				Where("id = ? AND version = ?", res.ID, res.Version).
				Delete(&domain.Reservation{})
			if tx.Error != nil {
				return nil, fmt.Errorf("delete reservation: %w", tx.Error)
			}
			if tx.RowsAffected == 0 {
				continue // lost the race, re-read
			}
			res.Players = nil
			return &RemoveOutcome{Reservation: res, Removed: removed, Deleted: true}, nil
		}

		updates := map[string]any{
			"players":       remaining,
			"status":        domain.StatusFor(len(remaining)),
			"last_modified": time.Now().UTC(),
			"version":       res.Version + 1,
		}
		tx := r.db.WithContext(ctx).Model(&domain.Reservation{}).
			Where("id = ? AND version = ?", res.ID, res.Version).
			Updates(updates)
		if tx.Error != nil {
			return nil, fmt.Errorf("update reservation: %w", tx.Error)
		}
		if tx.RowsAffected == 0 {
			continue
		}
		res.Players = remaining
		res.Status = updates["status"].(string)
		res.LastModified = updates["last_modified"].(time.Time)
		res.Version++
		return &RemoveOutcome{Reservation: res, Removed: removed}, nil
	}
	return nil, ErrConflict
}
