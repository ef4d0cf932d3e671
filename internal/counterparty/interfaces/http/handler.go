package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/bankingrisk/internal/counterparty/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CounterpartyHandler 负责处理 SA-CCR 计算相关的 HTTP 请求
type CounterpartyHandler struct {
	service *application.CounterpartyService
}

// NewCounterpartyHandler 创建 HTTP 处理器
func NewCounterpartyHandler(service *application.CounterpartyService) *CounterpartyHandler {
	return &CounterpartyHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CounterpartyHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/counterparty")
	{
		api.POST("/saccr", h.Run)
		api.GET("/runs/:run_id", h.GetRunResults)
	}
}

// Run 执行一次 SA-CCR 计算
func (h *CounterpartyHandler) Run(c *gin.Context) {
	var req application.RunSACCRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		logging.Error(c.Request.Context(), "saccr run failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, dto)
}

// GetRunResults 查询一次计算的存档结果
func (h *CounterpartyHandler) GetRunResults(c *gin.Context) {
	runID := c.Param("run_id")
	results, err := h.service.GetRunResults(c.Request.Context(), runID)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to load counterparty results", "run_id", runID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, results)
}
