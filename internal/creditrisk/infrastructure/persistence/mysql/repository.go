package mysql

import (
	"context"

	"github.com/wyfcoding/bankingrisk/internal/creditrisk/domain"
	"gorm.io/gorm"
)

type rwaResultRepository struct {
	db *gorm.DB
}

// NewRWAResultRepository 创建并返回一个新的 RWAResultRepository 实例。
func NewRWAResultRepository(db *gorm.DB) domain.RWAResultRepository {
	return &rwaResultRepository{db: db}
}

// SaveBatch 批量保存一次计算的结果
func (r *rwaResultRepository) SaveBatch(ctx context.Context, runID string, results []domain.RWAResult) error {
	if len(results) == 0 {
		return nil
	}
	models := make([]RWAResultModel, 0, len(results))
	for _, result := range results {
		models = append(models, toModel(runID, result))
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 500).Error
}

// GetByRunID 查询一次计算的全部结果
func (r *rwaResultRepository) GetByRunID(ctx context.Context, runID string) ([]domain.RWAResult, error) {
	var models []RWAResultModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Find(&models).Error; err != nil {
		return nil, err
	}
	results := make([]domain.RWAResult, 0, len(models))
	for _, m := range models {
		results = append(results, toDomain(m))
	}
	return results, nil
}
