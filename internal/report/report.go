// Package report aggregates validated transactions into summary financial
// metrics and chart-ready series.
package report

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankscope-dev/bankscope/internal/model"
)

// Summary holds the aggregated financial metrics for a validated set.
//
// The three share fields always sum to exactly 100 whenever TotalCost is
// positive; rounding drift is reconciled into the largest bucket.
type Summary struct {
	Sales           decimal.Decimal
	GeneralExpenses decimal.Decimal
	Payroll         decimal.Decimal
	RawMaterials    decimal.Decimal
	TotalCost       decimal.Decimal
	Profit          decimal.Decimal

	GeneralExpenseShare int
	PayrollShare        int
	RawMaterialShare    int

	// Margin is profit over sales as a percentage with one decimal place,
	// "0.0" when there are no sales.
	Margin string
}

// Aggregate computes summary statistics over a transaction set. Records
// categorized not-applicable are excluded from every sum.
func Aggregate(txns []model.Transaction) Summary {
	var s Summary
	s.Sales = sumAbs(txns, model.CategorySale)
	s.GeneralExpenses = sumAbs(txns, model.CategoryGeneralExpense)
	s.Payroll = sumAbs(txns, model.CategoryPayroll)
	s.RawMaterials = sumAbs(txns, model.CategoryRawMaterial)

	s.TotalCost = s.GeneralExpenses.Add(s.Payroll).Add(s.RawMaterials)
	s.Profit = s.Sales.Sub(s.TotalCost)

	s.GeneralExpenseShare, s.PayrollShare, s.RawMaterialShare = costShares(
		s.GeneralExpenses, s.Payroll, s.RawMaterials, s.TotalCost)

	if s.Sales.IsZero() {
		s.Margin = "0.0"
	} else {
		s.Margin = s.Profit.Div(s.Sales).Mul(decimal.NewFromInt(100)).StringFixed(1)
	}
	return s
}

// costShares rounds each bucket's percentage of total cost to the nearest
// integer, then reconciles so the three integers sum to exactly 100. The
// signed rounding drift lands on the bucket with the largest raw share;
// ties resolve general expenses, then payroll, then raw materials.
func costShares(general, payroll, raw, total decimal.Decimal) (int, int, int) {
	if !total.IsPositive() {
		return 0, 0, 0
	}

	gPct := general.Div(total).InexactFloat64() * 100
	pPct := payroll.Div(total).InexactFloat64() * 100
	mPct := raw.Div(total).InexactFloat64() * 100

	g := int(math.Round(gPct))
	p := int(math.Round(pPct))
	m := int(math.Round(mPct))

	if diff := 100 - (g + p + m); diff != 0 {
		switch {
		case gPct >= pPct && gPct >= mPct:
			g += diff
		case pPct >= mPct:
			p += diff
		default:
			m += diff
		}
	}
	return g, p, m
}

func sumAbs(txns []model.Transaction, cat model.Category) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Category == cat {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total
}

// DailySale is one entry of the per-day sales series.
type DailySale struct {
	Date   string
	Amount decimal.Decimal
}

// DailySales groups sale transactions by their raw date string, summing
// absolute amounts, ordered by date ascending.
//
// Ordering reinterprets each "D/M/Y" string as "Y M D" for lexical
// comparison. That makes lexical order chronological for that format only;
// malformed dates sort by their literal reordered text. A textual hack, but
// the one the statement format calls for.
func DailySales(txns []model.Transaction) []DailySale {
	byDate := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Category != model.CategorySale {
			continue
		}
		byDate[t.Date] = byDate[t.Date].Add(t.Amount.Abs())
	}

	series := make([]DailySale, 0, len(byDate))
	for date, amt := range byDate {
		series = append(series, DailySale{Date: date, Amount: amt})
	}
	sort.Slice(series, func(i, j int) bool {
		ki, kj := dateSortKey(series[i].Date), dateSortKey(series[j].Date)
		if ki != kj {
			return ki < kj
		}
		return series[i].Date < series[j].Date
	})
	return series
}

// dateSortKey reverses the slash-separated parts of a date string:
// "31/01/2025" -> "20250131".
func dateSortKey(date string) string {
	parts := strings.Split(date, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "")
}
