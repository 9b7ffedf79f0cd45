package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/shared/server/middleware"
	"resume-matcher-backend/internal/shared/server/respond"
	"resume-matcher-backend/internal/shared/storage/upload"
)

const maxUploadBytes = 5 << 20

// Handler wires HTTP handlers to the resumes service.
type Handler struct {
	Svc     *Service
	Uploads *upload.Store
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, uploads *upload.Store) *Handler {
	return &Handler{Svc: svc, Uploads: uploads}
}

// RegisterRoutes attaches resume routes to the router group. Analyze routes
// accept guests; everything addressing a stored resume requires auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/structure", h.analyzeStructure)
	rg.POST("/resumes/ats", h.analyzeATS)

	authed := rg.Group("", middleware.RequireAuth())
	authed.POST("/resumes/:id/ats/rescan", h.rescanATS)
	authed.GET("/resumes/:id/matches", h.matchJobs)
	authed.DELETE("/resumes/:id", h.deleteResume)
	authed.GET("/profile", h.profile)
}

// identity returns the caller identity, nil for guests.
func identity(c *gin.Context) *Identity {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return nil
	}
	return &Identity{UserID: userID}
}

// receiveUpload saves the multipart "file" field into retained storage and
// returns its durable path.
func (h *Handler) receiveUpload(c *gin.Context) (Upload, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return Upload{}, false
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is empty or exceeds the size limit", nil)
		return Upload{}, false
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return Upload{}, false
	}
	defer src.Close()

	ownerKey := middleware.UserIDFromContext(c)
	path, size, err := h.Uploads.Save(c.Request.Context(), ownerKey, fileHeader.Filename, src)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store upload", nil)
		return Upload{}, false
	}

	return Upload{
		OriginalFilename: fileHeader.Filename,
		Path:             path,
		SizeBytes:        size,
	}, true
}

func (h *Handler) analyzeStructure(c *gin.Context) {
	up, ok := h.receiveUpload(c)
	if !ok {
		return
	}

	result, err := h.Svc.AnalyzeStructure(c.Request.Context(), up, identity(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	h.noteResumeID(c, result.Outcome)
	respond.OK(c, toStructureResponse(result))
}

func (h *Handler) analyzeATS(c *gin.Context) {
	up, ok := h.receiveUpload(c)
	if !ok {
		return
	}

	result, err := h.Svc.AnalyzeATS(c.Request.Context(), up, identity(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	h.noteResumeID(c, result.Outcome)
	respond.OK(c, toATSResponse(result))
}

func (h *Handler) rescanATS(c *gin.Context) {
	resumeID := c.Param("id")
	if resumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume id is required", nil)
		return
	}

	result, err := h.Svc.RescanATS(c.Request.Context(), resumeID, identity(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Set("resumeId", resumeID)
	respond.OK(c, toATSResponse(result))
}

func (h *Handler) matchJobs(c *gin.Context) {
	resumeID := c.Param("id")
	if resumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume id is required", nil)
		return
	}

	result, err := h.Svc.MatchJobs(c.Request.Context(), resumeID, identity(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond.OK(c, MatchResponse{
		ResumeID:       result.ResumeID,
		SkillsDetected: result.SkillsDetected,
		Matches:        result.Matches,
	})
}

func (h *Handler) deleteResume(c *gin.Context) {
	resumeID := c.Param("id")
	if resumeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), resumeID, identity(c)); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) profile(c *gin.Context) {
	list, err := h.Svc.Profile(c.Request.Context(), identity(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	summaries := make([]SummaryResponse, 0, len(list))
	for _, resume := range list {
		summaries = append(summaries, toSummaryResponse(resume))
	}
	respond.OK(c, gin.H{"resumes": summaries})
}

func (h *Handler) noteResumeID(c *gin.Context, outcome Outcome) {
	if p, ok := outcome.(Persisted); ok {
		c.Set("resumeId", p.ResumeID)
	}
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "resume belongs to another user", nil)
	case errors.Is(err, ErrFileMissing):
		respond.Error(c, http.StatusConflict, "file_missing", "the retained resume file is no longer available", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}
