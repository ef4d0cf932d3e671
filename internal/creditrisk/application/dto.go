package application

import (
	"github.com/wyfcoding/bankingrisk/internal/creditrisk/domain"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// RunRWARequest 一次 RWA 计算请求体，字段与生成器输入契约一致
type RunRWARequest struct {
	Exposures []portfolio.RawExposure `json:"exposures" binding:"required"`
}

// RunSummaryDTO 一次计算的汇总结果
type RunSummaryDTO struct {
	RunID       string             `json:"run_id"`
	Approach    domain.Approach    `json:"approach"`
	RecordCount int                `json:"record_count"`
	TotalRWA    string             `json:"total_rwa"`
	Results     []domain.RWAResult `json:"results"`
}
