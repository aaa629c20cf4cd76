package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orderbot-backend/internal/domains/order/model"
	"orderbot-backend/internal/domains/order/service"
	"orderbot-backend/internal/shared/response"
	"orderbot-backend/pkg/logger"
)

type OrderHandler struct {
	service service.ServiceInterface
}

func NewOrderHandler(service service.ServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /api/v1/admin/orders with optional status, from, to
// and limit query parameters. Dates are YYYY-MM-DD.
func (h *OrderHandler) List(c *gin.Context) {
	var filter model.Filter

	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseStatus(raw)
		if err != nil {
			response.BadRequest(c, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "invalid to date, expected YYYY-MM-DD")
			return
		}
		// The upper bound is exclusive; include the named day.
		end := to.Add(24 * time.Hour)
		filter.To = &end
	}

	filter.Limit = 50
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 200 {
			response.BadRequest(c, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error("order listing failed", err)
		response.InternalServerError(c, "something went wrong")
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// Get handles GET /api/v1/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/v1/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "invalid order status")
		return
	}

	detail, err := h.service.Transition(c.Request.Context(), id, status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// DailyTotals handles GET /api/v1/admin/orders/daily-totals?date=YYYY-MM-DD.
func (h *OrderHandler) DailyTotals(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	totals, err := h.service.DailyTotals(c.Request.Context(), date)
	if err != nil {
		logger.Error("daily totals failed", err)
		response.InternalServerError(c, "something went wrong")
		return
	}

	response.Success(c, http.StatusOK, totals)
}

// Analytics handles GET /api/v1/admin/analytics?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Without a range the report covers the last seven days.
func (h *OrderHandler) Analytics(c *gin.Context) {
	var from, to time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "invalid to date, expected YYYY-MM-DD")
			return
		}
		// The upper bound is exclusive; include the named day.
		to = parsed.Add(24 * time.Hour)
	}

	report, err := h.service.Analytics(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("analytics failed", err)
		response.InternalServerError(c, "something went wrong")
		return
	}

	response.Success(c, http.StatusOK, report)
}

func (h *OrderHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, model.ErrInvalidTransition):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrInvalidStatus):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("order operation failed", err)
		response.InternalServerError(c, "something went wrong")
	}
}
