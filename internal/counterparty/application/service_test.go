package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/bankingrisk/internal/counterparty/domain"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

type fakeExposureRepo struct {
	trades map[string][]domain.TradeExposure
	sets   map[string][]domain.NettingSetExposure
}

func newFakeExposureRepo() *fakeExposureRepo {
	return &fakeExposureRepo{
		trades: make(map[string][]domain.TradeExposure),
		sets:   make(map[string][]domain.NettingSetExposure),
	}
}

func (f *fakeExposureRepo) SaveTrades(_ context.Context, runID string, trades []domain.TradeExposure) error {
	f.trades[runID] = trades
	return nil
}

func (f *fakeExposureRepo) SaveNettingSets(_ context.Context, runID string, sets []domain.NettingSetExposure) error {
	f.sets[runID] = sets
	return nil
}

func (f *fakeExposureRepo) GetTradesByRunID(_ context.Context, runID string) ([]domain.TradeExposure, error) {
	return f.trades[runID], nil
}

func (f *fakeExposureRepo) GetNettingSetsByRunID(_ context.Context, runID string) ([]domain.NettingSetExposure, error) {
	return f.sets[runID], nil
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func floatPtr(f float64) *float64 { return &f }

func testDerivatives() []portfolio.RawDerivative {
	return []portfolio.RawDerivative{
		{
			ID:                 "DRV-1",
			EntityID:           "BANK-A",
			DerivativeType:     "INTEREST_RATE_SWAP",
			NotionalAmount:     decimalPtr("1000"),
			MaturityYears:      floatPtr(4),
			MTMValue:           decimalPtr("100"),
			CounterpartyID:     "CP-1",
			CounterpartyRating: "A",
			CounterpartyPD:     floatPtr(0.01),
			CounterpartyLGD:    floatPtr(0.45),
			NettingSetID:       "NS-1",
		},
		{
			ID:                 "DRV-2",
			EntityID:           "BANK-A",
			DerivativeType:     "INTEREST_RATE_SWAP",
			NotionalAmount:     decimalPtr("1000"),
			MaturityYears:      floatPtr(4),
			MTMValue:           decimalPtr("-40"),
			CounterpartyID:     "CP-1",
			CounterpartyRating: "A",
			CounterpartyPD:     floatPtr(0.01),
			CounterpartyLGD:    floatPtr(0.45),
			NettingSetID:       "NS-1",
		},
	}
}

func TestNettedRunResultsAreRetrievable(t *testing.T) {
	repo := newFakeExposureRepo()
	service := NewCounterpartyService(portfolio.DefaultRiskConfig(), repo, slog.Default())
	ctx := context.Background()

	dto, err := service.Run(ctx, RunSACCRRequest{Derivatives: testDerivatives(), Netted: true})
	require.NoError(t, err)
	require.Len(t, dto.NettingSets, 1)

	// 净额结算集结果与逐笔结果共用同一查询入口
	stored, err := service.GetRunResults(ctx, dto.RunID)
	require.NoError(t, err)
	require.Len(t, stored.NettingSets, 1)
	assert.Empty(t, stored.Trades)
	assert.Equal(t, "NS-1", stored.NettingSets[0].NettingSetID)
	assert.True(t, stored.NettingSets[0].EAD.Equal(dto.NettingSets[0].EAD))
}

func TestGrossRunResultsAreRetrievable(t *testing.T) {
	repo := newFakeExposureRepo()
	service := NewCounterpartyService(portfolio.DefaultRiskConfig(), repo, slog.Default())
	ctx := context.Background()

	dto, err := service.Run(ctx, RunSACCRRequest{Derivatives: testDerivatives()})
	require.NoError(t, err)
	require.Len(t, dto.Trades, 2)

	stored, err := service.GetRunResults(ctx, dto.RunID)
	require.NoError(t, err)
	require.Len(t, stored.Trades, 2)
	assert.Empty(t, stored.NettingSets)
	assert.Equal(t, "DRV-1", stored.Trades[0].DerivativeID)
}
