package mysql

import (
	"context"

	"github.com/wyfcoding/bankingrisk/internal/counterparty/domain"
	"gorm.io/gorm"
)

type exposureRepository struct {
	db *gorm.DB
}

// NewExposureRepository 创建并返回一个新的 ExposureRepository 实例。
func NewExposureRepository(db *gorm.DB) domain.ExposureRepository {
	return &exposureRepository{db: db}
}

// SaveTrades 批量保存逐笔结果
func (r *exposureRepository) SaveTrades(ctx context.Context, runID string, trades []domain.TradeExposure) error {
	if len(trades) == 0 {
		return nil
	}
	models := make([]TradeExposureModel, 0, len(trades))
	for _, t := range trades {
		models = append(models, toTradeModel(runID, t))
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 500).Error
}

// SaveNettingSets 批量保存净额结算集结果
func (r *exposureRepository) SaveNettingSets(ctx context.Context, runID string, sets []domain.NettingSetExposure) error {
	if len(sets) == 0 {
		return nil
	}
	models := make([]NettingSetModel, 0, len(sets))
	for _, s := range sets {
		models = append(models, toNettingSetModel(runID, s))
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 500).Error
}

// GetTradesByRunID 查询一次计算的逐笔结果
func (r *exposureRepository) GetTradesByRunID(ctx context.Context, runID string) ([]domain.TradeExposure, error) {
	var models []TradeExposureModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Find(&models).Error; err != nil {
		return nil, err
	}
	trades := make([]domain.TradeExposure, 0, len(models))
	for _, m := range models {
		trades = append(trades, toTradeDomain(m))
	}
	return trades, nil
}

// GetNettingSetsByRunID 查询一次计算的净额结算集结果
func (r *exposureRepository) GetNettingSetsByRunID(ctx context.Context, runID string) ([]domain.NettingSetExposure, error) {
	var models []NettingSetModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Find(&models).Error; err != nil {
		return nil, err
	}
	sets := make([]domain.NettingSetExposure, 0, len(models))
	for _, m := range models {
		sets = append(sets, toNettingSetDomain(m))
	}
	return sets, nil
}
