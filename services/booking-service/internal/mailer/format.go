package mailer

import (
	"fmt"
	"time"
)

// Club-facing copy is Spanish; code and logs stay English.

var courtNames = map[string]string{
	"court_1": "Cancha 1 - PITE",
	"court_2": "Cancha 2 - LILEN",
	"court_3": "Cancha 3 - PLAIYA",
}

var weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
var monthsES = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// CourtName maps a court id to its club display name; unknown ids pass through.
func CourtName(courtID string) string {
	if n, ok := courtNames[courtID]; ok {
		return n
	}
	return courtID
}

// FormatDateES renders "YYYY-MM-DD" as "jueves, 24 de julio de 2025".
// Unparseable input passes through untouched rather than breaking an email.
func FormatDateES(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year())
}

// EndTime derives the slot end from its start; club slots run 90 minutes.
func EndTime(startTime string) string {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return startTime
	}
	return t.Add(90 * time.Minute).Format("15:04")
}
