package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/bankingrisk/internal/creditrisk/application"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CreditRiskHandler 负责处理信用风险 RWA 计算相关的 HTTP 请求
type CreditRiskHandler struct {
	service *application.CreditRiskService
}

// NewCreditRiskHandler 创建 HTTP 处理器
func NewCreditRiskHandler(service *application.CreditRiskService) *CreditRiskHandler {
	return &CreditRiskHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CreditRiskHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/rwa")
	{
		api.POST("/standardized", h.RunStandardized)
		api.POST("/irb", h.RunIRB)
		api.GET("/runs/:run_id", h.GetRunResults)
	}
}

// RunStandardized 执行标准法 RWA 计算
func (h *CreditRiskHandler) RunStandardized(c *gin.Context) {
	h.run(c, h.service.RunStandardized)
}

// RunIRB 执行 IRB 初级法 RWA 计算
func (h *CreditRiskHandler) RunIRB(c *gin.Context) {
	h.run(c, h.service.RunIRB)
}

func (h *CreditRiskHandler) run(c *gin.Context, fn func(ctx context.Context, raws []portfolio.RawExposure) (*application.RunSummaryDTO, error)) {
	var req application.RunRWARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := fn(c.Request.Context(), req.Exposures)
	if err != nil {
		var schemaErr *portfolio.SchemaError
		if errors.As(err, &schemaErr) {
			response.ErrorWithStatus(c, http.StatusUnprocessableEntity, schemaErr.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "rwa run failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, dto)
}

// GetRunResults 查询一次计算的全部结果
func (h *CreditRiskHandler) GetRunResults(c *gin.Context) {
	runID := c.Param("run_id")
	results, err := h.service.GetRunResults(c.Request.Context(), runID)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to load rwa results", "run_id", runID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, results)
}
