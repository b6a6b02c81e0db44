package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashionforward/psp-router/internal/dto"
	"github.com/fashionforward/psp-router/internal/service"
)

type AuthorizeHandler struct {
	svc *service.RoutingService
}

func NewAuthorizeHandler(svc *service.RoutingService) *AuthorizeHandler {
	return &AuthorizeHandler{svc: svc}
}

// Authorize handles POST /api/v1/authorize.
func (h *AuthorizeHandler) Authorize(c *gin.Context) {
	var req dto.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	result, err := h.svc.Authorize(c.Request.Context(), &req.TransactionRequest, req.Strategy)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorizeResponse(result))
}

// AuthorizeBatch handles POST /api/v1/authorize/batch.
func (h *AuthorizeHandler) AuthorizeBatch(c *gin.Context) {
	var req dto.BatchAuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	results, err := h.svc.AuthorizeBatch(c.Request.Context(), req.Transactions, req.Strategy)
	if err != nil {
		c.Error(err)
		return
	}

	resp := dto.BatchAuthorizeResponse{
		Total:   len(results),
		Results: make([]dto.AuthorizeResponse, len(results)),
	}
	for i, result := range results {
		resp.Results[i] = dto.NewAuthorizeResponse(result)
		if result.Approved {
			resp.Approved++
		}
	}

	c.JSON(http.StatusOK, resp)
}
