// Package application 监管报告编排服务
// 生成摘要：
// 1) 串联信用风险、交易对手风险、资本/杠杆与流动性四类计算
// 2) 交易对手 EAD/RWA 可选注入 RWA 总额
// 3) 产出并持久化 RegulatoryReport 聚合，发布生成与资本缺口事件
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	capitalapp "github.com/wyfcoding/bankingrisk/internal/capital/application"
	capitaldomain "github.com/wyfcoding/bankingrisk/internal/capital/domain"
	counterpartyapp "github.com/wyfcoding/bankingrisk/internal/counterparty/application"
	creditapp "github.com/wyfcoding/bankingrisk/internal/creditrisk/application"
	creditdomain "github.com/wyfcoding/bankingrisk/internal/creditrisk/domain"
	liquidityapp "github.com/wyfcoding/bankingrisk/internal/liquidity/application"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/bankingrisk/internal/reporting/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// GenerateReportCommand 一次完整报告生成命令
type GenerateReportCommand struct {
	Exposures   []portfolio.RawExposure      `json:"exposures" binding:"required"`
	Derivatives []portfolio.RawDerivative    `json:"derivatives"`
	CapitalBase capitaldomain.RawCapitalBase `json:"capital_base"`
	Buffers     *portfolio.RegulatoryBuffers `json:"buffers"`
	// IncludeCounterpartyRWA 为 true 时将 SA-CCR 的 RWA 注入总额
	IncludeCounterpartyRWA bool `json:"include_counterparty_rwa"`
	// Netted 为 true 时衍生品按净额结算集聚合
	Netted bool `json:"netted"`
}

// ReportDTO 报告生成结果
type ReportDTO struct {
	Report    *domain.RegulatoryReport          `json:"report"`
	Capital   capitaldomain.CapitalRatios       `json:"capital"`
	Leverage  capitaldomain.LeverageRatio       `json:"leverage"`
	Liquidity *liquidityapp.LiquiditySummaryDTO `json:"liquidity"`
}

// ReportService 监管报告编排服务
type ReportService struct {
	credit       *creditapp.CreditRiskService
	counterparty *counterpartyapp.CounterpartyService
	capital      *capitalapp.CapitalService
	liquidity    *liquidityapp.LiquidityService
	repo         domain.ReportRepository
	publisher    domain.EventPublisher
	logger       *slog.Logger
}

// NewReportService 创建监管报告编排服务
func NewReportService(
	credit *creditapp.CreditRiskService,
	counterparty *counterpartyapp.CounterpartyService,
	capital *capitalapp.CapitalService,
	liquidity *liquidityapp.LiquidityService,
	repo domain.ReportRepository,
	publisher domain.EventPublisher,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		credit:       credit,
		counterparty: counterparty,
		capital:      capital,
		liquidity:    liquidity,
		repo:         repo,
		publisher:    publisher,
		logger:       logger.With("module", "report_service"),
	}
}

// Generate 生成一份完整监管报告
func (s *ReportService) Generate(ctx context.Context, cmd GenerateReportCommand) (*ReportDTO, error) {
	reportID := fmt.Sprintf("REP-%d", idgen.GenID())

	// 杠杆率总敞口采用归一化后的 EAD 口径
	exposures, err := portfolio.NormalizeExposures(cmd.Exposures)
	if err != nil {
		return nil, fmt.Errorf("normalize exposures: %w", err)
	}

	// 信用风险：全量标准法 + 零售 IRB
	stdRun, err := s.credit.RunStandardized(ctx, cmd.Exposures)
	if err != nil {
		return nil, fmt.Errorf("standardized rwa: %w", err)
	}
	irbRun, err := s.credit.RunIRB(ctx, cmd.Exposures)
	if err != nil {
		return nil, fmt.Errorf("irb rwa: %w", err)
	}

	stdTotal := creditdomain.TotalRWA(stdRun.Results)
	irbTotal := creditdomain.TotalRWA(irbRun.Results)

	// RWA 总额口径：非零售走标准法 + 零售走 IRB。
	// 输出底线（72.5% 混合）按现行口径不实现，两套总额均留档。
	aggregate := irbTotal
	irbCovered := make(map[string]bool, len(irbRun.Results))
	for _, r := range irbRun.Results {
		irbCovered[r.ExposureID] = true
	}
	for _, r := range stdRun.Results {
		if !irbCovered[r.ExposureID] {
			aggregate = aggregate.Add(r.RWAAmount)
		}
	}

	// 交易对手风险（可选注入）
	counterpartyRWA := decimal.Zero
	totalNetEAD := decimal.Zero
	if len(cmd.Derivatives) > 0 {
		ccrRun, err := s.counterparty.Run(ctx, counterpartyapp.RunSACCRRequest{
			Derivatives: cmd.Derivatives,
			Netted:      cmd.Netted,
		})
		if err != nil {
			return nil, fmt.Errorf("saccr: %w", err)
		}
		counterpartyRWA = decimal.RequireFromString(ccrRun.TotalRWA)
		totalNetEAD = decimal.RequireFromString(ccrRun.TotalNetEAD)
		if cmd.IncludeCounterpartyRWA {
			aggregate = aggregate.Add(counterpartyRWA)
		}
	}

	// 资本与杠杆
	ratios := s.capital.ComputeRatios(ctx, capitalapp.CapitalRatioRequest{
		RWATotal:    aggregate,
		CapitalBase: cmd.CapitalBase,
		Buffers:     cmd.Buffers,
	})

	totalExposure := totalEAD(exposures).Add(totalNetEAD)
	leverage := s.capital.ComputeLeverage(ctx, capitalapp.LeverageRequest{
		Tier1Capital:  cmd.CapitalBase.Normalize().Tier1Capital,
		TotalExposure: totalExposure,
	})

	// 流动性
	liquiditySummary, err := s.liquidity.Run(ctx, cmd.Exposures)
	if err != nil {
		return nil, fmt.Errorf("liquidity: %w", err)
	}

	report := &domain.RegulatoryReport{
		ReportID:          reportID,
		Status:            domain.ReportStatusGenerated,
		ExposureCount:     len(cmd.Exposures),
		DerivativeCount:   len(cmd.Derivatives),
		StandardizedRWA:   stdTotal,
		IRBRWA:            irbTotal,
		CounterpartyRWA:   counterpartyRWA,
		AggregateRWA:      aggregate,
		CET1Ratio:         ratios.CET1.Ratio,
		Tier1Ratio:        ratios.Tier1.Ratio,
		TotalCapitalRatio: ratios.Total.Ratio,
		LeverageRatio:     leverage.Ratio,
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	s.publishEvents(ctx, report, ratios)

	s.logger.InfoContext(ctx, "regulatory report generated",
		"report_id", reportID,
		"aggregate_rwa", aggregate.String(),
		"cet1_ratio", ratios.CET1.Ratio,
		"leverage_ratio", leverage.Ratio)

	return &ReportDTO{
		Report:    report,
		Capital:   ratios,
		Leverage:  leverage,
		Liquidity: liquiditySummary,
	}, nil
}

func (s *ReportService) publishEvents(ctx context.Context, report *domain.RegulatoryReport, ratios capitaldomain.CapitalRatios) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReportGenerated(domain.ReportGeneratedEvent{
		ReportID:     report.ReportID,
		AggregateRWA: report.AggregateRWA.String(),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish report event", "report_id", report.ReportID, "error", err)
	}

	for tier, r := range map[string]capitaldomain.TierRatio{
		"cet1":  ratios.CET1,
		"tier1": ratios.Tier1,
		"total": ratios.Total,
	} {
		if r.Surplus >= 0 {
			continue
		}
		if err := s.publisher.PublishCapitalShortfall(domain.CapitalShortfallEvent{
			ReportID: report.ReportID,
			Tier:     tier,
			Ratio:    r.Ratio,
			Surplus:  r.Surplus,
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish shortfall event", "report_id", report.ReportID, "error", err)
		}
	}
}

// GetReport 查询报告
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*domain.RegulatoryReport, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("report repository not configured")
	}
	return s.repo.GetByReportID(ctx, reportID)
}

// ListReports 查询最近报告
func (s *ReportService) ListReports(ctx context.Context, limit int) ([]*domain.RegulatoryReport, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("report repository not configured")
	}
	return s.repo.List(ctx, limit)
}

func totalEAD(exposures []portfolio.Exposure) decimal.Decimal {
	total := decimal.Zero
	for _, e := range exposures {
		total = total.Add(e.EAD)
	}
	return total
}
