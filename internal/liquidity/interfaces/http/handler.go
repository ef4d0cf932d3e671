package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/bankingrisk/internal/liquidity/application"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// LiquidityHandler 负责处理流动性指标相关的 HTTP 请求
type LiquidityHandler struct {
	service *application.LiquidityService
}

// NewLiquidityHandler 创建 HTTP 处理器
func NewLiquidityHandler(service *application.LiquidityService) *LiquidityHandler {
	return &LiquidityHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *LiquidityHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/liquidity")
	{
		api.POST("/run", h.Run)
		api.GET("/runs/:run_id", h.GetRunResults)
	}
}

// Run 执行一次按实体的 LCR/NSFR/ALMM 计算
func (h *LiquidityHandler) Run(c *gin.Context) {
	var req application.RunLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.service.Run(c.Request.Context(), req.Exposures)
	if err != nil {
		var schemaErr *portfolio.SchemaError
		if errors.As(err, &schemaErr) {
			response.ErrorWithStatus(c, http.StatusUnprocessableEntity, schemaErr.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "liquidity run failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, dto)
}

// GetRunResults 查询一次计算的全部实体级结果
func (h *LiquidityHandler) GetRunResults(c *gin.Context) {
	runID := c.Param("run_id")
	results, err := h.service.GetRunResults(c.Request.Context(), runID)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to load liquidity results", "run_id", runID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, results)
}
