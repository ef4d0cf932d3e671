package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/bankingrisk/internal/capital/application"
	"github.com/wyfcoding/pkg/response"
)

// CapitalHandler 负责处理资本充足率与杠杆率相关的 HTTP 请求
type CapitalHandler struct {
	service *application.CapitalService
}

// NewCapitalHandler 创建 HTTP 处理器
func NewCapitalHandler(service *application.CapitalService) *CapitalHandler {
	return &CapitalHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CapitalHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/capital")
	{
		api.POST("/ratios", h.ComputeRatios)
		api.POST("/leverage", h.ComputeLeverage)
	}
}

// ComputeRatios 计算三层资本比率
func (h *CapitalHandler) ComputeRatios(c *gin.Context) {
	var req application.CapitalRatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, h.service.ComputeRatios(c.Request.Context(), req))
}

// ComputeLeverage 计算杠杆率
func (h *CapitalHandler) ComputeLeverage(c *gin.Context) {
	var req application.LeverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, h.service.ComputeLeverage(c.Request.Context(), req))
}
