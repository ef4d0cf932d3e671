// Package application 资本充足率与杠杆率服务
package application

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/bankingrisk/internal/capital/domain"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// CapitalRatioRequest 资本比率计算请求
type CapitalRatioRequest struct {
	RWATotal    decimal.Decimal              `json:"rwa_total"`
	CapitalBase domain.RawCapitalBase        `json:"capital_base" binding:"required"`
	Buffers     *portfolio.RegulatoryBuffers `json:"buffers"`
}

// LeverageRequest 杠杆率计算请求
type LeverageRequest struct {
	Tier1Capital  decimal.Decimal `json:"tier1_capital"`
	TotalExposure decimal.Decimal `json:"total_exposure"`
	Minimum       *float64        `json:"minimum"`
}

// CapitalService 资本指标计算服务
type CapitalService struct {
	cfg      portfolio.RiskConfig
	ratios   *domain.CapitalRatioCalculator
	leverage *domain.LeverageCalculator
	logger   *slog.Logger
}

// NewCapitalService 创建资本指标计算服务
func NewCapitalService(cfg portfolio.RiskConfig, logger *slog.Logger) *CapitalService {
	return &CapitalService{
		cfg:      cfg,
		ratios:   domain.NewCapitalRatioCalculator(logger),
		leverage: domain.NewLeverageCalculator(logger),
		logger:   logger.With("module", "capital_service"),
	}
}

// ComputeRatios 计算三层资本比率，缓冲缺省取配置值
func (s *CapitalService) ComputeRatios(ctx context.Context, req CapitalRatioRequest) domain.CapitalRatios {
	buffers := s.cfg.Buffers
	if req.Buffers != nil {
		buffers = *req.Buffers
	}
	return s.ratios.Calculate(ctx, req.RWATotal, req.CapitalBase.Normalize(), buffers)
}

// ComputeLeverage 计算杠杆率，最低要求缺省取配置值
func (s *CapitalService) ComputeLeverage(ctx context.Context, req LeverageRequest) domain.LeverageRatio {
	minimum := s.cfg.LeverageMinimum
	if req.Minimum != nil {
		minimum = *req.Minimum
	}
	return s.leverage.Calculate(ctx, req.Tier1Capital, req.TotalExposure, minimum)
}
