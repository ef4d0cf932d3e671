package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	capitalapp "github.com/wyfcoding/bankingrisk/internal/capital/application"
	capitaldomain "github.com/wyfcoding/bankingrisk/internal/capital/domain"
	counterpartyapp "github.com/wyfcoding/bankingrisk/internal/counterparty/application"
	creditapp "github.com/wyfcoding/bankingrisk/internal/creditrisk/application"
	liquidityapp "github.com/wyfcoding/bankingrisk/internal/liquidity/application"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
	"github.com/wyfcoding/bankingrisk/internal/reporting/domain"
)

type fakeReportRepo struct {
	saved []*domain.RegulatoryReport
}

func (f *fakeReportRepo) Save(_ context.Context, report *domain.RegulatoryReport) error {
	f.saved = append(f.saved, report)
	return nil
}

func (f *fakeReportRepo) GetByReportID(_ context.Context, reportID string) (*domain.RegulatoryReport, error) {
	for _, r := range f.saved {
		if r.ReportID == reportID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) List(_ context.Context, _ int) ([]*domain.RegulatoryReport, error) {
	return f.saved, nil
}

type fakePublisher struct {
	generated  []domain.ReportGeneratedEvent
	shortfalls []domain.CapitalShortfallEvent
}

func (f *fakePublisher) PublishReportGenerated(event domain.ReportGeneratedEvent) error {
	f.generated = append(f.generated, event)
	return nil
}

func (f *fakePublisher) PublishCapitalShortfall(event domain.CapitalShortfallEvent) error {
	f.shortfalls = append(f.shortfalls, event)
	return nil
}

func newTestReportService(repo domain.ReportRepository, publisher domain.EventPublisher) *ReportService {
	cfg := portfolio.DefaultRiskConfig()
	logger := slog.Default()
	return NewReportService(
		creditapp.NewCreditRiskService(cfg, nil, nil, logger),
		counterpartyapp.NewCounterpartyService(cfg, nil, logger),
		capitalapp.NewCapitalService(cfg, logger),
		liquidityapp.NewLiquidityService(nil, logger),
		repo, publisher, logger,
	)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func testExposures() []portfolio.RawExposure {
	return []portfolio.RawExposure{
		{
			ID:            "EXP-1",
			EntityID:      "BANK-A",
			ProductType:   "CONSUMER_LOAN",
			ExposureClass: "retail_other",
			EAD:           decimalPtr("1000"),
			PD:            floatPtr(0.02),
			LGD:           floatPtr(0.45),
			IsRetail:      boolPtr(true),
		},
		{
			ID:            "EXP-2",
			EntityID:      "BANK-A",
			ProductType:   "TERM_LOAN",
			ExposureClass: "corporate",
			EAD:           decimalPtr("2000"),
			IsRetail:      boolPtr(false),
		},
	}
}

func TestGenerateReport(t *testing.T) {
	repo := &fakeReportRepo{}
	publisher := &fakePublisher{}
	service := newTestReportService(repo, publisher)

	dto, err := service.Generate(context.Background(), GenerateReportCommand{
		Exposures:   testExposures(),
		CapitalBase: capitaldomain.RawCapitalBase{CET1Capital: decimal.RequireFromString("1000")},
	})
	require.NoError(t, err)
	require.NotNil(t, dto.Report)

	report := dto.Report
	assert.Equal(t, domain.ReportStatusGenerated, report.Status)
	assert.Equal(t, 2, report.ExposureCount)
	assert.Equal(t, 0, report.DerivativeCount)

	// 非零售走标准法（公司 100% → 2000），零售走 IRB
	assert.True(t, report.IRBRWA.IsPositive())
	assert.True(t, report.AggregateRWA.Equal(report.IRBRWA.Add(decimal.RequireFromString("2000"))),
		"aggregate %s irb %s", report.AggregateRWA, report.IRBRWA)
	// 标准法总额全量留档，含零售行
	assert.True(t, report.StandardizedRWA.GreaterThan(decimal.RequireFromString("2000")))

	require.Len(t, repo.saved, 1)
	require.Len(t, publisher.generated, 1)
	assert.Equal(t, report.ReportID, publisher.generated[0].ReportID)
	// 资本充足，无缺口事件
	assert.Empty(t, publisher.shortfalls)

	assert.NotNil(t, dto.Liquidity)
	assert.Equal(t, 1, dto.Liquidity.EntityCount)
}

func TestGenerateReportCapitalShortfall(t *testing.T) {
	publisher := &fakePublisher{}
	service := newTestReportService(&fakeReportRepo{}, publisher)

	_, err := service.Generate(context.Background(), GenerateReportCommand{
		Exposures:   testExposures(),
		CapitalBase: capitaldomain.RawCapitalBase{CET1Capital: decimal.RequireFromString("100")},
	})
	require.NoError(t, err)

	// cet1 / tier1 / total 三层全部低于要求
	require.Len(t, publisher.shortfalls, 3)
	for _, e := range publisher.shortfalls {
		assert.Negative(t, e.Surplus)
	}
}

func TestGenerateReportWithCounterpartyRWA(t *testing.T) {
	service := newTestReportService(&fakeReportRepo{}, &fakePublisher{})

	derivatives := []portfolio.RawDerivative{{
		ID:                 "DRV-1",
		EntityID:           "BANK-A",
		DerivativeType:     "INTEREST_RATE_SWAP",
		NotionalAmount:     decimalPtr("100000"),
		MaturityYears:      floatPtr(4),
		MTMValue:           decimalPtr("500"),
		CounterpartyID:     "CP-1",
		CounterpartyRating: "A",
		CounterpartyPD:     floatPtr(0.01),
		CounterpartyLGD:    floatPtr(0.45),
		NettingSetID:       "NS-1",
	}}

	base := capitaldomain.RawCapitalBase{CET1Capital: decimal.RequireFromString("1000")}

	without, err := service.Generate(context.Background(), GenerateReportCommand{
		Exposures:   testExposures(),
		Derivatives: derivatives,
		CapitalBase: base,
	})
	require.NoError(t, err)

	with, err := service.Generate(context.Background(), GenerateReportCommand{
		Exposures:              testExposures(),
		Derivatives:            derivatives,
		CapitalBase:            base,
		IncludeCounterpartyRWA: true,
	})
	require.NoError(t, err)

	assert.True(t, with.Report.CounterpartyRWA.IsPositive())
	// 注入开关只影响总额，不影响交易对手明细
	assert.True(t, with.Report.CounterpartyRWA.Equal(without.Report.CounterpartyRWA))
	assert.True(t, with.Report.AggregateRWA.Equal(
		without.Report.AggregateRWA.Add(with.Report.CounterpartyRWA)))
	// 衍生品净 EAD 计入杠杆率总敞口
	assert.True(t, with.Leverage.TotalExposure.GreaterThan(decimal.RequireFromString("3000")))
}

func TestGenerateReportIsIdempotent(t *testing.T) {
	service := newTestReportService(&fakeReportRepo{}, &fakePublisher{})
	cmd := GenerateReportCommand{
		Exposures:   testExposures(),
		CapitalBase: capitaldomain.RawCapitalBase{CET1Capital: decimal.RequireFromString("1000")},
	}

	first, err := service.Generate(context.Background(), cmd)
	require.NoError(t, err)
	second, err := service.Generate(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, first.Report.AggregateRWA.Equal(second.Report.AggregateRWA))
	assert.InDelta(t, first.Capital.CET1.Ratio, second.Capital.CET1.Ratio, 1e-12)
	assert.InDelta(t, first.Leverage.Ratio, second.Leverage.Ratio, 1e-12)
}

func TestGenerateReportMissingEADFails(t *testing.T) {
	service := newTestReportService(&fakeReportRepo{}, &fakePublisher{})

	_, err := service.Generate(context.Background(), GenerateReportCommand{
		Exposures: []portfolio.RawExposure{{ID: "EXP-1"}, {ID: "EXP-2"}},
	})
	require.Error(t, err)
	var schemaErr *portfolio.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}
