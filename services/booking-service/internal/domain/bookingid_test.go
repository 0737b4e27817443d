package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingID(t *testing.T) {
	court, date, start, err := ParseBookingID("court_1-2025-07-24-1930")
	require.NoError(t, err)
	assert.Equal(t, "court_1", court)
	assert.Equal(t, "2025-07-24", date)
	assert.Equal(t, "19:30", start)
}

func TestParseBookingIDTooFewTokens(t *testing.T) {
	_, _, _, err := ParseBookingID("court_1-2025")
	assert.ErrorIs(t, err, ErrBadBookingID)

	_, _, _, err = ParseBookingID("")
	assert.ErrorIs(t, err, ErrBadBookingID)
}

func TestParseBookingIDBadTimeToken(t *testing.T) {
	_, _, _, err := ParseBookingID("court_1-2025-07-24-19h30")
	assert.ErrorIs(t, err, ErrBadBookingID)

	_, _, _, err = ParseBookingID("court_1-2025-07-24-193")
	assert.ErrorIs(t, err, ErrBadBookingID)
}

func TestFormatBookingID(t *testing.T) {
	assert.Equal(t, "court_1-2025-07-24-1930", FormatBookingID("court_1", "2025-07-24", "19:30"))
}

func TestFormatParseRoundTrip(t *testing.T) {
	id := FormatBookingID("court_2", "2025-12-01", "09:00")
	court, date, start, err := ParseBookingID(id)
	require.NoError(t, err)
	assert.Equal(t, "court_2", court)
	assert.Equal(t, "2025-12-01", date)
	assert.Equal(t, "09:00", start)
}
