package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/jobs"
	"resume-matcher-backend/internal/resumes"
	"resume-matcher-backend/internal/shared/auth"
	"resume-matcher-backend/internal/shared/config"
	"resume-matcher-backend/internal/shared/server/middleware"
	"resume-matcher-backend/internal/shared/server/respond"
	"resume-matcher-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config        config.Config
	Tokens        *auth.Tokens
	UsersHandler  *users.Handler
	ResumeHandler *resumes.Handler
	JobsHandler   *jobs.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.UsersHandler.RegisterRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)
	deps.ResumeHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
