// Package application 信用风险 RWA 计算服务
// 生成摘要：
// 1) 归一化原始敞口（缺失 EAD 列触发 SchemaError，整批中止）
// 2) 调用标准法 / IRB 计算器，持久化结果并发布批次完成事件
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/bankingrisk/internal/creditrisk/domain"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// CreditRiskService 信用风险计算服务
type CreditRiskService struct {
	standardized *domain.StandardizedCalculator
	irb          *domain.IRBCalculator
	repo         domain.RWAResultRepository
	publisher    domain.EventPublisher
	logger       *slog.Logger
}

// NewCreditRiskService 创建信用风险计算服务
func NewCreditRiskService(
	cfg portfolio.RiskConfig,
	repo domain.RWAResultRepository,
	publisher domain.EventPublisher,
	logger *slog.Logger,
) *CreditRiskService {
	return &CreditRiskService{
		standardized: domain.NewStandardizedCalculator(cfg),
		irb:          domain.NewIRBCalculator(cfg, logger),
		repo:         repo,
		publisher:    publisher,
		logger:       logger.With("module", "creditrisk_service"),
	}
}

// RunStandardized 执行一次标准法 RWA 计算
func (s *CreditRiskService) RunStandardized(ctx context.Context, raws []portfolio.RawExposure) (*RunSummaryDTO, error) {
	exposures, err := portfolio.NormalizeExposures(raws)
	if err != nil {
		return nil, fmt.Errorf("normalize exposures: %w", err)
	}
	results := s.standardized.CalculateBatch(exposures)
	return s.finishRun(ctx, domain.ApproachStandardized, results)
}

// RunIRB 执行一次 IRB 初级法 RWA 计算（仅零售敞口）
func (s *CreditRiskService) RunIRB(ctx context.Context, raws []portfolio.RawExposure) (*RunSummaryDTO, error) {
	exposures, err := portfolio.NormalizeExposures(raws)
	if err != nil {
		return nil, fmt.Errorf("normalize exposures: %w", err)
	}
	results := s.irb.CalculateBatch(ctx, exposures)
	return s.finishRun(ctx, domain.ApproachIRB, results)
}

func (s *CreditRiskService) finishRun(ctx context.Context, approach domain.Approach, results []domain.RWAResult) (*RunSummaryDTO, error) {
	runID := fmt.Sprintf("RWA-%d", idgen.GenID())
	total := domain.TotalRWA(results)

	if s.repo != nil {
		if err := s.repo.SaveBatch(ctx, runID, results); err != nil {
			return nil, fmt.Errorf("save rwa results: %w", err)
		}
	}

	if s.publisher != nil {
		event := domain.RWABatchCalculatedEvent{
			RunID:       runID,
			Approach:    approach,
			RecordCount: len(results),
			TotalRWA:    total.String(),
		}
		if err := s.publisher.PublishRWABatchCalculated(event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish rwa batch event", "run_id", runID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "rwa run completed",
		"run_id", runID, "approach", approach, "records", len(results), "total_rwa", total.String())

	return &RunSummaryDTO{
		RunID:       runID,
		Approach:    approach,
		RecordCount: len(results),
		TotalRWA:    total.String(),
		Results:     results,
	}, nil
}

// GetRunResults 查询一次计算的全部结果
func (s *CreditRiskService) GetRunResults(ctx context.Context, runID string) ([]domain.RWAResult, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("result repository not configured")
	}
	return s.repo.GetByRunID(ctx, runID)
}
