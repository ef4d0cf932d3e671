package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/bankingrisk/internal/reporting/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"gorm.io/gorm"
)

// ReportHandler 负责处理监管报告相关的 HTTP 请求
type ReportHandler struct {
	service *application.ReportService
}

// NewReportHandler 创建 HTTP 处理器
func NewReportHandler(service *application.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/reports")
	{
		api.POST("/run", h.Generate)
		api.GET("/:report_id", h.GetReport)
		api.GET("", h.ListReports)
	}
}

// Generate 生成一份完整监管报告
func (h *ReportHandler) Generate(c *gin.Context) {
	var cmd application.GenerateReportCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.service.Generate(c.Request.Context(), cmd)
	if err != nil {
		var schemaErr *portfolio.SchemaError
		if errors.As(err, &schemaErr) {
			response.ErrorWithStatus(c, http.StatusUnprocessableEntity, schemaErr.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "report generation failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, dto)
}

// GetReport 按报告编号查询
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID := c.Param("report_id")
	report, err := h.service.GetReport(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "report not found", "")
			return
		}
		logging.Error(c.Request.Context(), "failed to load report", "report_id", reportID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, report)
}

// ListReports 查询最近报告
func (h *ReportHandler) ListReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	reports, err := h.service.ListReports(c.Request.Context(), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to list reports", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, reports)
}
