package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubgolfpapudo/reservas/pkg/web"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/service"
)

type Server struct {
	users *service.UserSvc
}

func NewServer(users *service.UserSvc) *Server {
	return &Server{users: users}
}

func (s *Server) Register(r *gin.Engine) {
	r.Use(web.CORS())
	r.GET("/users", s.ListUsers)
	r.POST("/sync/users", s.SyncUsers)
}

// ListUsers serves the read-only directory the web app's player picker uses.
func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"name": u.Name, "email": u.Email, "phone": u.Phone})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out, "count": len(out)})
}

// SyncUsers triggers a directory sync; the scheduler hits this endpoint.
func (s *Server) SyncUsers(c *gin.Context) {
	rep, err := s.users.SyncFromSheet(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": rep})
}
