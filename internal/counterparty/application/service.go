// Package application 交易对手信用风险计算服务
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/bankingrisk/internal/counterparty/domain"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// RunSACCRRequest 一次 SA-CCR 计算请求体
type RunSACCRRequest struct {
	Derivatives []portfolio.RawDerivative `json:"derivatives" binding:"required"`
	// Netted 为 true 时按净额结算集聚合
	Netted bool `json:"netted"`
}

// SACCRSummaryDTO 一次计算的汇总结果
type SACCRSummaryDTO struct {
	RunID       string                      `json:"run_id"`
	Netted      bool                        `json:"netted"`
	TradeCount  int                         `json:"trade_count"`
	TotalNetEAD string                      `json:"total_net_ead"`
	TotalRWA    string                      `json:"total_rwa"`
	Trades      []domain.TradeExposure      `json:"trades,omitempty"`
	NettingSets []domain.NettingSetExposure `json:"netting_sets,omitempty"`
}

// RunResultsDTO 一次计算的存档查询结果
type RunResultsDTO struct {
	RunID       string                      `json:"run_id"`
	Trades      []domain.TradeExposure      `json:"trades,omitempty"`
	NettingSets []domain.NettingSetExposure `json:"netting_sets,omitempty"`
}

// CounterpartyService 交易对手风险计算服务
type CounterpartyService struct {
	calculator *domain.SACCRCalculator
	repo       domain.ExposureRepository
	logger     *slog.Logger
}

// NewCounterpartyService 创建交易对手风险计算服务
func NewCounterpartyService(cfg portfolio.RiskConfig, repo domain.ExposureRepository, logger *slog.Logger) *CounterpartyService {
	return &CounterpartyService{
		calculator: domain.NewSACCRCalculator(cfg),
		repo:       repo,
		logger:     logger.With("module", "counterparty_service"),
	}
}

// Run 执行一次 SA-CCR 计算
func (s *CounterpartyService) Run(ctx context.Context, req RunSACCRRequest) (*SACCRSummaryDTO, error) {
	derivatives := portfolio.NormalizeDerivatives(req.Derivatives)
	runID := fmt.Sprintf("CCR-%d", idgen.GenID())

	dto := &SACCRSummaryDTO{RunID: runID, Netted: req.Netted, TradeCount: len(derivatives)}

	if req.Netted {
		sets := s.calculator.CalculateNetted(derivatives)
		netEAD := decimal.Zero
		rwa := decimal.Zero
		for _, set := range sets {
			netEAD = netEAD.Add(set.NetEAD)
			rwa = rwa.Add(set.RWA)
		}
		dto.NettingSets = sets
		dto.TotalNetEAD = netEAD.String()
		dto.TotalRWA = rwa.String()
		if s.repo != nil {
			if err := s.repo.SaveNettingSets(ctx, runID, sets); err != nil {
				return nil, fmt.Errorf("save netting sets: %w", err)
			}
		}
	} else {
		trades := s.calculator.CalculateBatch(derivatives)
		dto.Trades = trades
		dto.TotalNetEAD = domain.TotalNetEAD(trades).String()
		dto.TotalRWA = domain.TotalRWA(trades).String()
		if s.repo != nil {
			if err := s.repo.SaveTrades(ctx, runID, trades); err != nil {
				return nil, fmt.Errorf("save trade exposures: %w", err)
			}
		}
	}

	s.logger.InfoContext(ctx, "saccr run completed",
		"run_id", runID, "netted", req.Netted, "trades", len(derivatives), "total_rwa", dto.TotalRWA)
	return dto, nil
}

// GetRunResults 查询一次计算的存档结果，逐笔与净额结算集两个口径都返回
func (s *CounterpartyService) GetRunResults(ctx context.Context, runID string) (*RunResultsDTO, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("exposure repository not configured")
	}
	trades, err := s.repo.GetTradesByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	sets, err := s.repo.GetNettingSetsByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &RunResultsDTO{RunID: runID, Trades: trades, NettingSets: sets}, nil
}
