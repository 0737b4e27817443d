package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Booking identifiers are the strings email links carry back to us:
// "{courtID}-{YYYY}-{MM}-{DD}-{HHMM}", e.g. "court_1-2025-07-24-1930".
// The same rule is used when issuing ids (confirmation emails) and when
// resolving them (cancellation fallback), so both sides live here.

var ErrBadBookingID = errors.New("malformed booking id")

var digits4 = regexp.MustCompile(`^\d{4}$`)
var idClean = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ParseBookingID decodes a composite booking id into its slot fields.
// Token 0 is the court, tokens 1..3 the date, token 4 a 4-digit HHMM.
func ParseBookingID(id string) (courtID, date, startTime string, err error) {
	parts := strings.Split(id, "-")
	if len(parts) < 5 {
		return "", "", "", fmt.Errorf("%w: %q", ErrBadBookingID, id)
	}
	hhmm := parts[4]
	if !digits4.MatchString(hhmm) {
		return "", "", "", fmt.Errorf("%w: bad time token %q", ErrBadBookingID, hhmm)
	}
	courtID = parts[0]
	date = strings.Join(parts[1:4], "-")
	startTime = hhmm[:2] + ":" + hhmm[2:]
	return courtID, date, startTime, nil
}

// FormatBookingID derives the canonical id for a slot. Characters outside
// [a-zA-Z0-9_-] are stripped, which collapses "19:30" into "1930".
func FormatBookingID(courtID, date, startTime string) string {
	return idClean.ReplaceAllString(fmt.Sprintf("%s-%s-%s", courtID, date, startTime), "")
}
