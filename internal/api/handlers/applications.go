// internal/api/handlers/applications.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"nbn-order-service/internal/api/resources"
	"nbn-order-service/internal/common/errors"
	"nbn-order-service/internal/common/logger"
	"nbn-order-service/internal/models"
	"nbn-order-service/internal/store"

	"github.com/gin-gonic/gin"
)

// ApplicationLister is the read side of the application store.
type ApplicationLister interface {
	List(ctx context.Context, filter store.ListFilter, offset, limit int) ([]models.Application, error)
	Count(ctx context.Context, filter store.ListFilter) (int64, error)
}

type ApplicationHandler struct {
	lister          ApplicationLister
	logger          logger.Logger
	defaultPageSize int
	maxPageSize     int
}

func NewApplicationHandler(lister ApplicationLister, log logger.Logger, defaultPageSize, maxPageSize int) *ApplicationHandler {
	return &ApplicationHandler{
		lister:          lister,
		logger:          log.WithFields(map[string]interface{}{"handler": "applications"}),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

type listMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

type listResponse struct {
	Data []resources.ApplicationResource `json:"data"`
	Meta listMeta                        `json:"meta"`
}

type errorBody struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Details string           `json:"details,omitempty"`
}

// List handles GET /v1/applications. Validation happens before any query
// executes.
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := store.ListFilter{}
	if planType := c.Query("plan_type"); planType != "" {
		if !models.ValidPlanType(planType) {
			appErr := errors.NewValidationError("plan_type", "must be one of nbn, opticomm, mobile")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errorBody{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			}})
			return
		}
		filter.PlanType = models.PlanType(planType)
	}

	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(c, "per_page", h.defaultPageSize)
	if perPage < 1 {
		perPage = h.defaultPageSize
	}
	if perPage > h.maxPageSize {
		perPage = h.maxPageSize
	}

	ctx := c.Request.Context()

	apps, err := h.lister.List(ctx, filter, (page-1)*perPage, perPage)
	if err != nil {
		h.respondStoreError(c, "list", err)
		return
	}

	total, err := h.lister.Count(ctx, filter)
	if err != nil {
		h.respondStoreError(c, "count", err)
		return
	}

	c.JSON(http.StatusOK, listResponse{
		Data: resources.FromApplications(apps),
		Meta: listMeta{Page: page, PerPage: perPage, Total: total},
	})
}

func (h *ApplicationHandler) respondStoreError(c *gin.Context, operation string, err error) {
	appErr := errors.NewStoreQueryError(operation, err)
	h.logger.Error("listing query failed", map[string]interface{}{
		"operation": operation,
		"error":     err,
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
	}})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
