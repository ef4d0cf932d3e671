package domain

import "context"

// ResultRepository 流动性指标结果仓储接口
type ResultRepository interface {
	SaveBatch(ctx context.Context, runID string, results []LiquidityResult) error
	GetByRunID(ctx context.Context, runID string) ([]LiquidityResult, error)
}
