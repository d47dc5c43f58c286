package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankscope-dev/bankscope/internal/amount"
	"github.com/bankscope-dev/bankscope/internal/model"
)

// Classifier seeds the initial category for each parsed transaction.
type Classifier interface {
	Classify(description string, amt decimal.Decimal) model.Category
}

// Columns holds the header synonym sets used to resolve the three required
// columns. Matching is a case-insensitive substring test against each header
// cell, so "Fecha operación" resolves via "fecha".
type Columns struct {
	Concept []string
	Date    []string
	Amount  []string
}

// DefaultColumns returns the built-in Spanish/English synonym sets.
func DefaultColumns() Columns {
	return Columns{
		Concept: []string{"concepto", "descripcion", "description"},
		Date:    []string{"fecha", "date"},
		Amount:  []string{"importe", "cantidad", "amount"},
	}
}

// headerDelims splits the header row on any supported delimiter.
var headerDelims = regexp.MustCompile(`[\t,;]`)

// softDelims splits rows that contain no tab character.
var softDelims = regexp.MustCompile(`[,;]`)

// Parser turns raw statement text into transactions.
type Parser struct {
	cols       Columns
	classifier Classifier
}

// NewParser creates a Parser. A nil classifier leaves every category unset.
func NewParser(cols Columns, classifier Classifier) *Parser {
	return &Parser{cols: cols, classifier: classifier}
}

// Parse tokenizes raw statement text and builds the transaction sequence.
// It returns a *ParseError when the header row or required columns cannot
// be resolved; the text is never partially parsed.
func (p *Parser) Parse(text string) ([]model.Transaction, error) {
	lines := splitLines(text)

	headerIdx := p.findHeader(lines)
	if headerIdx == -1 {
		return nil, &ParseError{Kind: MissingHeaderRow}
	}

	headers := headerDelims.Split(strings.ToLower(lines[headerIdx]), -1)
	conceptIdx := findColumn(headers, p.cols.Concept)
	dateIdx := findColumn(headers, p.cols.Date)
	amountIdx := findColumn(headers, p.cols.Amount)

	if conceptIdx == -1 || dateIdx == -1 || amountIdx == -1 {
		var missing []string
		if dateIdx == -1 {
			missing = append(missing, LabelDate)
		}
		if conceptIdx == -1 {
			missing = append(missing, LabelConcept)
		}
		if amountIdx == -1 {
			missing = append(missing, LabelAmount)
		}
		return nil, &ParseError{Kind: MissingRequiredColumns, Missing: missing}
	}

	var txns []model.Transaction
	for _, line := range lines[headerIdx+1:] {
		// Per-row delimiter: tab wins when present, since bank exports mix
		// tab-delimited data under comma-delimited metadata lines.
		var values []string
		if strings.Contains(line, "\t") {
			values = strings.Split(line, "\t")
		} else {
			values = softDelims.Split(line, -1)
		}
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}

		amt := amount.Normalize(field(values, amountIdx))
		desc := field(values, conceptIdx)

		// Trailing non-data rows: nothing to describe and nothing to count.
		if desc == "" && amt.IsZero() {
			continue
		}

		category := model.CategoryUnset
		if p.classifier != nil {
			category = p.classifier.Classify(desc, amt)
		}

		txns = append(txns, model.Transaction{
			ID:          len(txns),
			Date:        field(values, dateIdx),
			Description: desc,
			Amount:      amt,
			Category:    category,
			Inferred:    category != model.CategoryUnset,
		})
	}
	return txns, nil
}

// findHeader returns the index of the first line that mentions a concept,
// date and amount synonym, falling back to the first tab-delimited line.
func (p *Parser) findHeader(lines []string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, p.cols.Concept) &&
			containsAny(lower, p.cols.Date) &&
			containsAny(lower, p.cols.Amount) {
			return i
		}
	}
	for i, line := range lines {
		if strings.Contains(line, "\t") {
			return i
		}
	}
	return -1
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func findColumn(headers, synonyms []string) int {
	for i, h := range headers {
		if containsAny(h, synonyms) {
			return i
		}
	}
	return -1
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// field returns values[i] or "" when the row is short.
func field(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}
