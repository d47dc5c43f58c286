package report

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankscope-dev/bankscope/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func txn(id int, date, desc, amt string, cat model.Category) model.Transaction {
	return model.Transaction{ID: id, Date: date, Description: desc, Amount: dec(amt), Category: cat}
}

func TestAggregateTotals(t *testing.T) {
	txns := []model.Transaction{
		txn(0, "01/10/2025", "Factura A", "1000", model.CategorySale),
		txn(1, "02/10/2025", "Factura B", "500", model.CategorySale),
		txn(2, "03/10/2025", "Google Ads", "-200", model.CategoryGeneralExpense),
		txn(3, "04/10/2025", "Nomina", "-300", model.CategoryPayroll),
		txn(4, "05/10/2025", "Proveedor", "-100", model.CategoryRawMaterial),
		txn(5, "06/10/2025", "Traspaso interno", "-999", model.CategoryNotApplicable),
	}

	s := Aggregate(txns)
	assert.True(t, s.Sales.Equal(dec("1500")), "sales: %s", s.Sales)
	assert.True(t, s.GeneralExpenses.Equal(dec("200")))
	assert.True(t, s.Payroll.Equal(dec("300")))
	assert.True(t, s.RawMaterials.Equal(dec("100")))
	assert.True(t, s.TotalCost.Equal(dec("600")))
	assert.True(t, s.Profit.Equal(dec("900")))
	assert.Equal(t, 100, s.GeneralExpenseShare+s.PayrollShare+s.RawMaterialShare)
	assert.Equal(t, "60.0", s.Margin)
}

func TestAggregateUsesAbsoluteAmounts(t *testing.T) {
	// A refunded sale recorded as negative still counts its magnitude.
	txns := []model.Transaction{
		txn(0, "01/10/2025", "Venta", "-100", model.CategorySale),
		txn(1, "01/10/2025", "Venta", "100", model.CategorySale),
	}
	s := Aggregate(txns)
	assert.True(t, s.Sales.Equal(dec("200")))
}

func TestAggregateZeroSalesMargin(t *testing.T) {
	txns := []model.Transaction{
		txn(0, "01/10/2025", "Nomina", "-300", model.CategoryPayroll),
	}
	s := Aggregate(txns)
	assert.Equal(t, "0.0", s.Margin)
	assert.True(t, s.Profit.Equal(dec("-300")))
	assert.Equal(t, 100, s.PayrollShare)
}

func TestAggregateZeroCostShares(t *testing.T) {
	txns := []model.Transaction{
		txn(0, "01/10/2025", "Venta", "100", model.CategorySale),
	}
	s := Aggregate(txns)
	assert.Equal(t, 0, s.GeneralExpenseShare)
	assert.Equal(t, 0, s.PayrollShare)
	assert.Equal(t, 0, s.RawMaterialShare)
}

func TestCostSharesReconcileToExactly100(t *testing.T) {
	// 33.3/33.3/33.4 rounds to 33/33/33; the drift lands on the largest
	// raw share.
	g, p, m := costShares(dec("33.3"), dec("33.3"), dec("33.4"), dec("100"))
	assert.Equal(t, 100, g+p+m)
	assert.Equal(t, 34, m)

	// Tie on the largest share resolves general > payroll > raw.
	g, p, m = costShares(dec("100"), dec("100"), dec("100"), dec("300"))
	assert.Equal(t, 100, g+p+m)
	assert.Equal(t, 34, g)
	assert.Equal(t, 33, p)
	assert.Equal(t, 33, m)
}

func TestCostSharesProperty(t *testing.T) {
	// For every nonnegative triple with positive total cost, the three
	// integers sum to exactly 100 and each sits within 1 of its raw
	// rounding.
	for a := 0; a <= 25; a++ {
		for b := 0; b <= 25; b++ {
			for c := 0; c <= 25; c++ {
				if a+b+c == 0 {
					continue
				}
				ga := decimal.NewFromInt(int64(a))
				gb := decimal.NewFromInt(int64(b))
				gc := decimal.NewFromInt(int64(c))
				total := ga.Add(gb).Add(gc)

				g, p, m := costShares(ga, gb, gc, total)
				label := fmt.Sprintf("triple %d/%d/%d", a, b, c)
				require.Equal(t, 100, g+p+m, label)

				rawG := ga.Div(total).InexactFloat64() * 100
				rawP := gb.Div(total).InexactFloat64() * 100
				rawM := gc.Div(total).InexactFloat64() * 100
				assert.InDelta(t, rawG, float64(g), 1.5, label)
				assert.InDelta(t, rawP, float64(p), 1.5, label)
				assert.InDelta(t, rawM, float64(m), 1.5, label)
			}
		}
	}
}

func TestDailySalesGroupingAndOrder(t *testing.T) {
	txns := []model.Transaction{
		txn(0, "02/11/2025", "Venta", "100", model.CategorySale),
		txn(1, "28/10/2025", "Venta", "-50", model.CategorySale),
		txn(2, "02/11/2025", "Venta", "25", model.CategorySale),
		txn(3, "28/10/2025", "Nomina", "-300", model.CategoryPayroll),
	}

	series := DailySales(txns)
	require.Len(t, series, 2)
	// 28/10 sorts before 02/11 once reordered to Y M D, even though the
	// raw strings compare the other way.
	assert.Equal(t, "28/10/2025", series[0].Date)
	assert.True(t, series[0].Amount.Equal(dec("50")))
	assert.Equal(t, "02/11/2025", series[1].Date)
	assert.True(t, series[1].Amount.Equal(dec("125")))
}

func TestDailySalesMalformedDatesSortLexically(t *testing.T) {
	txns := []model.Transaction{
		txn(0, "sometime", "Venta", "10", model.CategorySale),
		txn(1, "01/10/2025", "Venta", "20", model.CategorySale),
	}
	series := DailySales(txns)
	require.Len(t, series, 2)
	// "20251001" < "sometime" in lexical order; no calendar validation.
	assert.Equal(t, "01/10/2025", series[0].Date)
}

func TestDateSortKey(t *testing.T) {
	assert.Equal(t, "20250131", dateSortKey("31/01/2025"))
	assert.Equal(t, "oddball", dateSortKey("oddball"))
	assert.Equal(t, "ba", dateSortKey("a/b"))
}
