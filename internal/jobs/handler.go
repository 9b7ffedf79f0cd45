package jobs

import (
	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/shared/server/respond"
)

// Handler serves the static job catalog.
type Handler struct {
	Matcher *Matcher
}

// NewHandler constructs a Handler.
func NewHandler(matcher *Matcher) *Handler {
	return &Handler{Matcher: matcher}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"jobs": h.Matcher.Catalog()})
}
