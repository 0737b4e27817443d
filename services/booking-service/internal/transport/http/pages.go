package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The email-link flow must never leave a member on a blank page: success and
// failure both render a styled page, and internal errors degrade to the
// contact-the-club variant.

var cancelSuccessPage = template.Must(template.New("cancelSuccess").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Cancelar Reserva - {{.ClubName}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
    .container { max-width: 500px; margin: 50px auto; background: white; border-radius: 12px; padding: 40px; text-align: center; box-shadow: 0 4px 12px rgba(0,0,0,0.1); }
    .header { color: #1e3a8a; margin-bottom: 30px; }
    .success { color: #10b981; font-size: 48px; margin-bottom: 20px; }
    .message { font-size: 18px; color: #374151; margin-bottom: 30px; line-height: 1.6; }
    .booking-id { background: #f3f4f6; padding: 12px; border-radius: 6px; font-family: monospace; color: #6b7280; margin: 20px 0; }
    .button { background: #1e3a8a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; margin: 10px; font-weight: 600; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{.ClubName}}</h1>
      <p>Sistema de Reservas de Pádel</p>
    </div>
    <div class="success">✅</div>
    <div class="message">
      <strong>Cancelación Individual Exitosa</strong><br><br>
      Has sido removido de esta reserva de pádel.
      Los otros jugadores han sido notificados automáticamente.
    </div>
    <div class="booking-id">
      Reserva: {{.BookingID}}<br>
      Jugador: {{.PlayerEmail}}
    </div>
    <a href="{{.ClubWebURL}}" class="button">🏓 Hacer Nueva Reserva</a>
    <a href="mailto:{{.ClubEmail}}" class="button">📧 Contactar al Club</a>
  </div>
</body>
</html>`))

var cancelErrorPage = template.Must(template.New("cancelError").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>Error - {{.ClubName}}</title>
</head>
<body style="font-family: Arial; text-align: center; padding: 50px;">
  <h1>⚠️ Error al Cancelar</h1>
  <p>{{.Message}}</p>
  <p>Por favor contacta al club directamente.</p>
  <a href="mailto:{{.ClubEmail}}">📧 Contactar Club</a>
</body>
</html>`))

func (s *Server) renderCancelSuccess(c *gin.Context, bookingID, playerEmail string) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = cancelSuccessPage.Execute(c.Writer, gin.H{
		"ClubName":    s.club.Name,
		"ClubEmail":   s.club.Email,
		"ClubWebURL":  s.club.WebURL,
		"BookingID":   bookingID,
		"PlayerEmail": playerEmail,
	})
}

func (s *Server) renderCancelError(c *gin.Context, message string) {
	c.Status(http.StatusInternalServerError)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = cancelErrorPage.Execute(c.Writer, gin.H{
		"ClubName":  s.club.Name,
		"ClubEmail": s.club.Email,
		"Message":   message,
	})
}
