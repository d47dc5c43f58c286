// Package export writes categorized transactions and summaries as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankscope-dev/bankscope/internal/model"
	"github.com/bankscope-dev/bankscope/internal/report"
)

// Header is the CSV header for categorized transaction exports.
const Header = "id,date,description,amount,category,inferred"

const (
	numFields   = 6
	colID       = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colCategory = 4
	colInferred = 5
)

// WriteTransactions writes transactions as CSV, header included.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTransactions reads a transaction export back.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(t.ID)
	row[colDate] = t.Date
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCategory] = string(t.Category)
	row[colInferred] = strconv.FormatBool(t.Inferred)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	amt, err := parseAmount(record[colAmount])
	if err != nil {
		return model.Transaction{}, err
	}

	cat, ok := model.ParseCategory(record[colCategory])
	if !ok && record[colCategory] != "" {
		return model.Transaction{}, fmt.Errorf("unknown category %q", record[colCategory])
	}

	inferred, err := strconv.ParseBool(record[colInferred])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing inferred %q: %w", record[colInferred], err)
	}

	return model.Transaction{
		ID:          id,
		Date:        record[colDate],
		Description: record[colDesc],
		Amount:      amt,
		Category:    cat,
		Inferred:    inferred,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// WriteSummary writes the summary metrics and daily sales series as a
// metric,value CSV.
func WriteSummary(w io.Writer, s report.Summary, daily []report.DailySale) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	rows := [][]string{
		{"metric", "value"},
		{"sales", s.Sales.StringFixed(2)},
		{"general_expenses", s.GeneralExpenses.StringFixed(2)},
		{"payroll", s.Payroll.StringFixed(2)},
		{"raw_materials", s.RawMaterials.StringFixed(2)},
		{"total_cost", s.TotalCost.StringFixed(2)},
		{"profit", s.Profit.StringFixed(2)},
		{"general_expense_share", strconv.Itoa(s.GeneralExpenseShare)},
		{"payroll_share", strconv.Itoa(s.PayrollShare)},
		{"raw_material_share", strconv.Itoa(s.RawMaterialShare)},
		{"margin", s.Margin},
	}
	for _, d := range daily {
		rows = append(rows, []string{"daily_sales " + d.Date, d.Amount.StringFixed(2)})
	}

	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}
