package metrics

import (
	"net/http"

	"nam3land/internal/domain"
	"nam3land/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires GET /metrics; the payload is shaped by the caller's
// role. Admins additionally get GET /admin/metrics via RegisterAdminRoutes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/metrics", h.Dashboard)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/metrics", h.AdminDashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	switch role {
	case domain.RoleAdmin:
		h.AdminDashboard(c)
	case domain.RoleAgent:
		m, err := h.service.AgentDashboard(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute metrics")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"metrics": m})
	default:
		m, err := h.service.CustomerDashboard(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute metrics")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"metrics": m})
	}
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	m, err := h.service.AdminDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute metrics")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"metrics": m})
}
