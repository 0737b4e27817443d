package mailer

import (
	"html/template"
	"strings"
)

// Email bodies follow the club's branded layout. Copy is intentionally close
// to the pages the web app shows, so members see one visual language.

type ConfirmationData struct {
	PlayerName  string
	IsOrganizer bool
	CourtName   string
	DateES      string
	TimeRange   string
	PlayerNames []string
	Count       int
	Capacity    int
	CancelURL   string
	ClubName    string
	ClubEmail   string
	ClubWebURL  string
}

type CancellationData struct {
	DepartingName  string
	DepartingEmail string
	CourtName      string
	DateES         string
	TimeRange      string
	RemainingNames []string
	ClubName       string
	ClubEmail      string
	ClubWebURL     string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Reserva Confirmada - {{.ClubName}}</title></head>
<body style="font-family:-apple-system,BlinkMacSystemFont,sans-serif;background:#f5f5f5;margin:0;padding:20px;">
  <div style="max-width:600px;margin:20px auto;background:white;border-radius:12px;overflow:hidden;box-shadow:0 4px 12px rgba(0,0,0,0.1);">
    <div style="background:linear-gradient(135deg,#1e3a8a,#1e40af);color:white;padding:40px 20px;text-align:center;">
      <h1>🏓 Reserva Confirmada</h1>
      <p>{{.ClubName}} - Pádel</p>
    </div>
    <div style="padding:30px;">
      <h2>¡Hola {{.PlayerName}}!</h2>
      <p>Tu reserva de pádel ha sido confirmada exitosamente. Te esperamos en la cancha.</p>
      <div style="background:#f8fafc;border-radius:8px;padding:24px;margin:20px 0;border-left:4px solid #1e3a8a;">
        <p>📅 <strong>Fecha:</strong> {{.DateES}}</p>
        <p>⏰ <strong>Hora:</strong> {{.TimeRange}}</p>
        <p>🎾 <strong>Cancha:</strong> {{.CourtName}}</p>
      </div>
      <h3>👥 Jugadores Confirmados ({{.Count}}/{{.Capacity}})</h3>
      <ul>
      {{- range $i, $name := .PlayerNames}}
        <li>{{$name}}{{if eq $i 0}} <em>(Organizador)</em>{{end}}</li>
      {{- end}}
      </ul>
      <div style="text-align:center;margin:30px 0;">
        <a href="{{.CancelURL}}" style="background:#ef4444;color:white;padding:12px 24px;border-radius:6px;text-decoration:none;font-weight:600;">❌ Cancelar Reserva</a>
      </div>
      <div style="background:#fef3cd;padding:16px;border-radius:6px;">
        <strong>💡 Importante:</strong> Para cancelar esta reserva, haz clic en el
        botón de arriba. Se notificará automáticamente a los otros jugadores.
      </div>
    </div>
    <div style="background:#f8fafc;padding:20px;text-align:center;color:#64748b;font-size:14px;">
      <strong>{{.ClubName}}</strong><br>
      📧 <a href="mailto:{{.ClubEmail}}">{{.ClubEmail}}</a> •
      🌐 <a href="{{.ClubWebURL}}">{{.ClubWebURL}}</a>
    </div>
  </div>
</body>
</html>`))

var cancellationTmpl = template.Must(template.New("cancellation").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Cancelación de Jugador - {{.ClubName}}</title></head>
<body style="font-family:-apple-system,BlinkMacSystemFont,sans-serif;background:#f5f5f5;margin:0;padding:20px;">
  <div style="max-width:600px;margin:20px auto;background:white;border-radius:12px;overflow:hidden;box-shadow:0 4px 12px rgba(0,0,0,0.1);">
    <div style="background:linear-gradient(135deg,#1e3a8a,#1e40af);color:white;padding:40px 20px;text-align:center;">
      <h1>⚠️ Cambio en tu Reserva</h1>
      <p>{{.ClubName}} - Pádel</p>
    </div>
    <div style="padding:30px;">
      <p><strong>{{.DepartingName}}</strong> ha cancelado su participación en esta reserva.</p>
      <div style="background:#f8fafc;border-radius:8px;padding:24px;margin:20px 0;border-left:4px solid #1e3a8a;">
        <p>📅 <strong>Fecha:</strong> {{.DateES}}</p>
        <p>⏰ <strong>Hora:</strong> {{.TimeRange}}</p>
        <p>🎾 <strong>Cancha:</strong> {{.CourtName}}</p>
      </div>
      <h3>👥 Jugadores que se mantienen</h3>
      <ul>
      {{- range .RemainingNames}}
        <li>{{.}}</li>
      {{- end}}
      </ul>
      <p>Si quieres coordinar un reemplazo, puedes escribir a
      <a href="mailto:{{.DepartingEmail}}">{{.DepartingEmail}}</a>.</p>
      <div style="text-align:center;margin:30px 0;">
        <a href="{{.ClubWebURL}}" style="background:#1e3a8a;color:white;padding:12px 24px;border-radius:6px;text-decoration:none;font-weight:600;">🏓 Ver Reservas</a>
      </div>
    </div>
    <div style="background:#f8fafc;padding:20px;text-align:center;color:#64748b;font-size:14px;">
      <strong>{{.ClubName}}</strong><br>
      📧 <a href="mailto:{{.ClubEmail}}">{{.ClubEmail}}</a> •
      🌐 <a href="{{.ClubWebURL}}">{{.ClubWebURL}}</a>
    </div>
  </div>
</body>
</html>`))

func RenderConfirmation(d ConfirmationData) (string, error) {
	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func RenderCancellation(d CancellationData) (string, error) {
	var sb strings.Builder
	if err := cancellationTmpl.Execute(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}
