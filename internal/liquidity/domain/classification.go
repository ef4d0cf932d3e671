// Package domain 流动性监管指标领域模型（LCR / NSFR / ALMM）
// 生成摘要：
// 1) 按实体从敞口子集推导 HQLA 分层、LCR 现金流、NSFR 的 ASF/RSF
// 2) ALMM 七档期限错配缺口与累计缺口
// 3) 资产负债分类在此一次性声明，公式内不再临时判断
package domain

import (
	"sort"

	"github.com/shopspring/decimal"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// balanceSheet 单实体敞口子集的分类汇总
type balanceSheet struct {
	TotalAssets       decimal.Decimal
	RetailDeposits    decimal.Decimal
	CorporateDeposits decimal.Decimal
	Mortgages         decimal.Decimal
	RetailLoans       decimal.Decimal
	CorporateLoans    decimal.Decimal
	WholesaleLongTerm decimal.Decimal
}

func (b balanceSheet) TotalDeposits() decimal.Decimal {
	return b.RetailDeposits.Add(b.CorporateDeposits)
}

func (b balanceSheet) TotalLoans() decimal.Decimal {
	return b.Mortgages.Add(b.RetailLoans).Add(b.CorporateLoans)
}

// classify 汇总单实体的资产负债口径
func classify(exposures []portfolio.Exposure) balanceSheet {
	var bs balanceSheet
	for _, e := range exposures {
		bs.TotalAssets = bs.TotalAssets.Add(e.EAD)
		switch {
		case e.HasProductTag("DEPOSIT"):
			if e.IsRetail {
				bs.RetailDeposits = bs.RetailDeposits.Add(e.EAD)
			} else {
				bs.CorporateDeposits = bs.CorporateDeposits.Add(e.EAD)
			}
		case e.HasProductTag("MORTGAGE"):
			bs.Mortgages = bs.Mortgages.Add(e.EAD)
		case e.HasProductTag("WHOLESALE"):
			if e.MaturityYears > 1 {
				bs.WholesaleLongTerm = bs.WholesaleLongTerm.Add(e.EAD)
			}
		case e.IsRetail:
			bs.RetailLoans = bs.RetailLoans.Add(e.EAD)
		default:
			bs.CorporateLoans = bs.CorporateLoans.Add(e.EAD)
		}
	}
	return bs
}

// GroupByEntity 按实体分组敞口，返回确定性排序的实体列表与分组
func GroupByEntity(exposures []portfolio.Exposure) ([]string, map[string][]portfolio.Exposure) {
	groups := make(map[string][]portfolio.Exposure)
	ids := make([]string, 0)
	for _, e := range exposures {
		if _, ok := groups[e.EntityID]; !ok {
			ids = append(ids, e.EntityID)
		}
		groups[e.EntityID] = append(groups[e.EntityID], e)
	}
	sort.Strings(ids)
	return ids, groups
}
