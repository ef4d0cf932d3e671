package domain

import "context"

// RWAResultRepository RWA 结果仓储接口
type RWAResultRepository interface {
	SaveBatch(ctx context.Context, runID string, results []RWAResult) error
	GetByRunID(ctx context.Context, runID string) ([]RWAResult, error)
}
