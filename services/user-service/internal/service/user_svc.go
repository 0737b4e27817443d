package service

import (
	"context"
	"log"
	"strings"

	"github.com/clubgolfpapudo/reservas/services/user-service/internal/domain"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/repository"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/sheets"
)

// placeholderEmail is assigned to members the sheet lists without an
// address; the booking side treats it as "cannot be notified".
const placeholderEmail = "sin-email@cgp.cl"

// DirectorySource abstracts the spreadsheet reader; tests plug a fake.
type DirectorySource interface {
	Fetch(ctx context.Context) ([]sheets.Row, error)
}

type UserSvc struct {
	repo *repository.UserRepo
	src  DirectorySource
}

func NewUserSvc(r *repository.UserRepo, src DirectorySource) *UserSvc {
	return &UserSvc{repo: r, src: src}
}

// SyncReport summarizes one directory sync run.
type SyncReport struct {
	Total   int `json:"total"`
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// SyncFromSheet mirrors the spreadsheet into the users table, upserting by
// email. Rows with no usable name are skipped; rows with no email get the
// placeholder address so the picker still lists the member.
func (s *UserSvc) SyncFromSheet(ctx context.Context) (*SyncReport, error) {
	rows, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	rep := &SyncReport{Total: len(rows)}
	for _, row := range rows {
		name := FormatDisplayName(row.FirstName, row.Paternal, row.Maternal)
		if name == "" {
			rep.Skipped++
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row.Email))
		if email == "" {
			email = placeholderEmail
		}
		u := &domain.User{
			Email:     email,
			Name:      name,
			FirstName: strings.TrimSpace(row.FirstName),
			LastNames: strings.TrimSpace(strings.TrimSpace(row.Paternal) + " " + strings.TrimSpace(row.Maternal)),
			Phone:     strings.TrimSpace(row.Phone),
			Category:  strings.TrimSpace(row.Category),
		}
		if err := s.repo.UpsertByEmail(ctx, u); err != nil {
			return rep, err
		}
		rep.Synced++
	}
	log.Printf("[users] sync done total=%d synced=%d skipped=%d", rep.Total, rep.Synced, rep.Skipped)
	return rep, nil
}

func (s *UserSvc) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// FormatDisplayName builds the roster display name the club uses:
// title-cased given and paternal names plus the maternal initial,
// e.g. ("FELIPE", "GARCÍA", "BENÍTEZ") -> "Felipe García B.".
func FormatDisplayName(first, paternal, maternal string) string {
	parts := []string{}
	if f := titleCase(first); f != "" {
		parts = append(parts, f)
	}
	if p := titleCase(paternal); p != "" {
		parts = append(parts, p)
	}
	if m := strings.TrimSpace(maternal); m != "" {
		r := []rune(m)
		parts = append(parts, strings.ToUpper(string(r[0]))+".")
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
