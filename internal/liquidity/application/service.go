// Package application 流动性监管指标服务
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/bankingrisk/internal/liquidity/domain"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// RunLiquidityRequest 一次流动性指标计算请求体
type RunLiquidityRequest struct {
	Exposures []portfolio.RawExposure `json:"exposures" binding:"required"`
}

// LiquiditySummaryDTO 一次计算的汇总结果
type LiquiditySummaryDTO struct {
	RunID       string                   `json:"run_id"`
	EntityCount int                      `json:"entity_count"`
	Results     []domain.LiquidityResult `json:"results"`
}

// LiquidityService 流动性指标计算服务
type LiquidityService struct {
	calculator *domain.LiquidityCalculator
	repo       domain.ResultRepository
	logger     *slog.Logger
}

// NewLiquidityService 创建流动性指标计算服务
func NewLiquidityService(repo domain.ResultRepository, logger *slog.Logger) *LiquidityService {
	return &LiquidityService{
		calculator: domain.NewLiquidityCalculator(logger),
		repo:       repo,
		logger:     logger.With("module", "liquidity_service"),
	}
}

// Run 执行一次按实体的 LCR/NSFR/ALMM 计算
func (s *LiquidityService) Run(ctx context.Context, raws []portfolio.RawExposure) (*LiquiditySummaryDTO, error) {
	exposures, err := portfolio.NormalizeExposures(raws)
	if err != nil {
		return nil, fmt.Errorf("normalize exposures: %w", err)
	}

	results := s.calculator.CalculateAll(ctx, exposures)
	runID := fmt.Sprintf("LIQ-%d", idgen.GenID())

	if s.repo != nil {
		if err := s.repo.SaveBatch(ctx, runID, results); err != nil {
			return nil, fmt.Errorf("save liquidity results: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "liquidity run completed", "run_id", runID, "entities", len(results))
	return &LiquiditySummaryDTO{RunID: runID, EntityCount: len(results), Results: results}, nil
}

// GetRunResults 查询一次计算的全部实体级结果
func (s *LiquidityService) GetRunResults(ctx context.Context, runID string) ([]domain.LiquidityResult, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("result repository not configured")
	}
	return s.repo.GetByRunID(ctx, runID)
}
