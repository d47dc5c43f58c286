package statement

import "strings"

// FailureKind identifies a structured parse failure.
type FailureKind string

const (
	// MissingHeaderRow means no line matched the header heuristics and no
	// tab-delimited fallback line existed.
	MissingHeaderRow FailureKind = "missing-header-row"
	// MissingRequiredColumns means a header was found but one or more of the
	// required columns could not be resolved.
	MissingRequiredColumns FailureKind = "missing-required-columns"
)

// Canonical labels for the three required columns, in reporting order.
const (
	LabelDate    = "Fecha"
	LabelConcept = "Concepto"
	LabelAmount  = "Importe"
)

// ParseError is a recoverable statement parse failure. It carries both a
// short title and a descriptive message so a presentation layer can render
// it without knowing the taxonomy.
type ParseError struct {
	Kind    FailureKind
	Missing []string // canonical column labels, set for MissingRequiredColumns
}

func (e *ParseError) Error() string {
	return e.Title() + ": " + e.Message()
}

// Title returns a short heading for the failure.
func (e *ParseError) Title() string {
	switch e.Kind {
	case MissingRequiredColumns:
		return "required columns are missing"
	default:
		return "no header row found"
	}
}

// Message returns a user-facing description. For missing columns it names
// each absent column by its canonical label.
func (e *ParseError) Message() string {
	switch e.Kind {
	case MissingRequiredColumns:
		return "the header row was found but these columns could not be located: " +
			strings.Join(e.Missing, ", ") +
			". Check the file or download the full statement from your bank."
	default:
		return "the file must contain " + LabelDate + ", " + LabelConcept +
			" and " + LabelAmount + " columns. Check the file or download the full statement from your bank."
	}
}
