package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/bankingrisk/internal/reporting/application"
)

// 生成器发布的组合批次主题
const PortfolioGeneratedTopic = "portfolio.generated"

// PortfolioHandler 消费生成器的组合批次消息并触发报告生成
type PortfolioHandler struct {
	service *application.ReportService
	logger  *slog.Logger
}

// NewPortfolioHandler 创建消费处理器
func NewPortfolioHandler(service *application.ReportService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{service: service, logger: logger.With("module", "portfolio_consumer")}
}

// Handle 处理一条组合批次消息
func (h *PortfolioHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var cmd application.GenerateReportCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		h.logger.ErrorContext(ctx, "failed to unmarshal portfolio batch", "error", err)
		return err
	}

	dto, err := h.service.Generate(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate report from portfolio batch", "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "report generated from portfolio batch",
		"report_id", dto.Report.ReportID, "exposures", dto.Report.ExposureCount)
	return nil
}
