package domain

import "context"

// ExposureRepository 交易对手风险结果仓储接口
type ExposureRepository interface {
	SaveTrades(ctx context.Context, runID string, trades []TradeExposure) error
	SaveNettingSets(ctx context.Context, runID string, sets []NettingSetExposure) error
	GetTradesByRunID(ctx context.Context, runID string) ([]TradeExposure, error)
	GetNettingSetsByRunID(ctx context.Context, runID string) ([]NettingSetExposure, error)
}
