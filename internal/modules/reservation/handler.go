package reservation

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterCustomerRoutes wires the endpoints a customer drives.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations", h.ListMyReservations)
	rg.PUT("/reservations/:id/cancel", h.CancelOwnReservation)
	rg.DELETE("/reservations/:id", h.DeleteReservation)
}

// RegisterAgentRoutes wires the agent dashboard endpoints.
func (h *Handler) RegisterAgentRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListAgentReservations)
	rg.PUT("/reservations/:id/status", h.TransitionStatus)
}

// RegisterAdminRoutes wires the admin dashboard endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListAllReservations)
	rg.PUT("/reservations/:id/status", h.TransitionStatus)
	rg.GET("/reservations/report", h.Report)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	customerID := c.GetInt64("user_id")

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resv, err := h.service.RequestReservation(c.Request.Context(), customerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"reservation": gin.H{
			"id":     resv.ID,
			"status": resv.Status,
		},
	})
}

func (h *Handler) ListMyReservations(c *gin.Context) {
	customerID := c.GetInt64("user_id")

	rows, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": toReservationResponses(rows)})
}

func (h *Handler) ListAgentReservations(c *gin.Context) {
	agentID := c.GetInt64("user_id")

	rows, err := h.service.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": toReservationResponses(rows)})
}

func (h *Handler) ListAllReservations(c *gin.Context) {
	rows, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": toReservationResponses(rows)})
}

func (h *Handler) Report(c *gin.Context) {
	rows, err := h.service.Report(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": toReservationResponses(rows)})
}

func (h *Handler) TransitionStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor := Actor{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}

	resv, prop, err := h.service.TransitionStatus(c.Request.Context(), actor, id,
		domain.ReservationStatus(req.Status), req.RejectionReason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	data := gin.H{
		"reservation": gin.H{
			"id":     resv.ID,
			"status": resv.Status,
		},
	}
	if prop != nil {
		data["property"] = gin.H{
			"id":              prop.ID,
			"status":          prop.Status,
			"units_total":     prop.UnitsTotal,
			"units_available": prop.UnitsAvailable,
		}
	}
	response.Success(c, http.StatusOK, data)
}

// CancelOwnReservation lets a customer cancel their own request. Reuses the
// same transition core, so inventory release still applies when a confirmed
// reservation is withdrawn.
func (h *Handler) CancelOwnReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	actor := Actor{
		UserID: c.GetInt64("user_id"),
		Role:   domain.RoleCustomer,
	}

	resv, _, err := h.service.TransitionStatus(c.Request.Context(), actor, id,
		domain.ReservationCancelled, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reservation": gin.H{
			"id":     resv.ID,
			"status": resv.Status,
		},
	})
}

func (h *Handler) DeleteReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	customerID := c.GetInt64("user_id")
	if err := h.service.DeleteReservation(c.Request.Context(), customerID, id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrPropertyUnassigned):
		response.Error(c, http.StatusBadRequest, "PROPERTY_UNASSIGNED", "Property has no assigned agent")
	case errors.Is(err, ErrDuplicateActiveReservation):
		response.Error(c, http.StatusConflict, "DUPLICATE_ACTIVE_RESERVATION", "You already have an active reservation for this property")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition is not allowed")
	case errors.Is(err, ErrMissingRejectionReason):
		response.Error(c, http.StatusBadRequest, "MISSING_REJECTION_REASON", "Rejection reason is required when cancelling")
	case errors.Is(err, ErrNoUnitsAvailable):
		response.Error(c, http.StatusConflict, "NO_UNITS_AVAILABLE", "No units left to confirm")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Reservation belongs to another customer")
	case errors.Is(err, ErrCannotDeletePending):
		response.Error(c, http.StatusBadRequest, "CANNOT_DELETE_PENDING", "Pending reservations cannot be deleted")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operation not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
