package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubgolfpapudo/reservas/pkg/web"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/repository"
	"github.com/clubgolfpapudo/reservas/services/booking-service/internal/service"
)

type Server struct {
	cancel *service.CancelSvc
	emails *service.EmailSvc
	club   service.ClubInfo
}

func NewServer(cancel *service.CancelSvc, emails *service.EmailSvc, club service.ClubInfo) *Server {
	return &Server{cancel: cancel, emails: emails, club: club}
}

func (s *Server) Register(r *gin.Engine) {
	r.Use(web.CORS())
	r.GET("/cancel", s.CancelBooking)
	r.POST("/cancel", s.CancelBooking)
	r.POST("/emails/booking", s.SendBookingEmails)
}

// CancelBooking removes one player from a reservation. GET serves the
// email-link flow and always answers with a human-readable page; POST is the
// programmatic flow and answers JSON.
func (s *Server) CancelBooking(c *gin.Context) {
	id := c.Query("id")
	email := c.Query("email")
	if c.Request.Method == http.MethodPost {
		var body struct {
			BookingID   string `json:"bookingId"`
			PlayerEmail string `json:"playerEmail"`
		}
		_ = c.ShouldBindJSON(&body)
		if id == "" {
			id = body.BookingID
		}
		if email == "" {
			email = body.PlayerEmail
		}
	}

	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "booking id required"})
		return
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "player email required"})
		return
	}
	result, err := s.cancel.Cancel(c.Request.Context(), id, email)
	if err != nil {
		msg := "No se pudo cancelar la reserva"
		if errors.Is(err, repository.ErrNotFound) {
			msg = "Reserva no encontrada"
		}
		if c.Request.Method == http.MethodGet {
			s.renderCancelError(c, msg)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
		return
	}

	if c.Request.Method == http.MethodGet {
		s.renderCancelSuccess(c, result.BookingID, email)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Reserva cancelada exitosamente",
		"bookingId": result.BookingID,
	})
}

// SendBookingEmails fans out confirmation mail for a freshly created booking.
func (s *Server) SendBookingEmails(c *gin.Context) {
	var req struct {
		Test    bool                       `json:"test"`
		Booking *service.BookingEmailInput `json:"booking"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos de reserva requeridos"})
		return
	}
	if req.Test {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Endpoint de correos operativo",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if req.Booking == nil || len(req.Booking.Players) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos de reserva requeridos"})
		return
	}

	bookingID, results := s.emails.SendConfirmations(c.Request.Context(), *req.Booking)
	sent := 0
	for _, r := range results {
		if r.Success {
			sent++
		}
	}
	if sent == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "No se pudo enviar ningún email",
			"results": results,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   fmt.Sprintf("%d emails enviados exitosamente", sent),
		"bookingId": bookingID,
		"results":   results,
	})
}
