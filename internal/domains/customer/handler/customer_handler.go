package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orderbot-backend/internal/domains/customer/service"
	"orderbot-backend/internal/shared/response"
	"orderbot-backend/pkg/logger"
)

type CustomerHandler struct {
	service service.ServiceInterface
}

func NewCustomerHandler(service service.ServiceInterface) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /api/v1/admin/customers with limit/offset paging.
func (h *CustomerHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	customers, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("customer listing failed", err)
		response.InternalServerError(c, "something went wrong")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, customers, &response.Meta{
		Limit: limit,
		Total: len(customers),
	})
}
