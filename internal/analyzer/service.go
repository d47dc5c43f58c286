// Package analyzer coordinates the ingestion, categorization and
// aggregation pipeline for one statement session.
package analyzer

import (
	"errors"
	"fmt"

	"github.com/bankscope-dev/bankscope/internal/model"
	"github.com/bankscope-dev/bankscope/internal/report"
	"github.com/bankscope-dev/bankscope/internal/statement"
)

// State is the session lifecycle state.
type State int

const (
	// StateEditing allows category mutations; aggregation is unavailable.
	StateEditing State = iota
	// StateValidated locks the record set and enables aggregation.
	StateValidated
)

func (s State) String() string {
	if s == StateValidated {
		return "validated"
	}
	return "editing"
}

// ErrValidated is returned by mutations attempted on a validated set.
// Ingesting a new statement is the way back to editing.
var ErrValidated = errors.New("record set is validated")

// ErrNotValidated is returned when aggregation is requested before
// validation.
var ErrNotValidated = errors.New("record set is not validated")

// IncompleteCategorizationError reports a failed validation attempt.
type IncompleteCategorizationError struct {
	Uncategorized int
}

func (e *IncompleteCategorizationError) Error() string {
	return fmt.Sprintf("%d transactions still uncategorized", e.Uncategorized)
}

// Service owns the transaction set and the editing/validated state machine.
// It is built for a single caller; wrap it if concurrent access is needed.
type Service struct {
	parser     *statement.Parser
	classifier statement.Classifier
	records    []model.Transaction
	state      State
}

// NewService creates a session around a classifier and column synonyms.
func NewService(cols statement.Columns, classifier statement.Classifier) *Service {
	return &Service{
		parser:     statement.NewParser(cols, classifier),
		classifier: classifier,
	}
}

// Ingest parses raw statement text and replaces the record set, returning
// the session to editing. On a parse failure the prior set and state are
// left untouched and the *statement.ParseError is returned.
func (s *Service) Ingest(text string) error {
	txns, err := s.parser.Parse(text)
	if err != nil {
		return err
	}
	s.records = txns
	s.state = StateEditing
	return nil
}

// State returns the current session state.
func (s *Service) State() State { return s.state }

// Records returns a copy of the transaction set in ingestion order.
func (s *Service) Records() []model.Transaction {
	out := make([]model.Transaction, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of transactions in the set.
func (s *Service) Len() int { return len(s.records) }

// CategorizedCount returns how many transactions have a category.
func (s *Service) CategorizedCount() int {
	n := 0
	for _, t := range s.records {
		if t.Categorized() {
			n++
		}
	}
	return n
}

// InferredCount returns how many categories came from the classifier.
func (s *Service) InferredCount() int {
	n := 0
	for _, t := range s.records {
		if t.Inferred {
			n++
		}
	}
	return n
}

// SetCategory records a manual category choice and clears the inferred
// flag. Unknown ids are ignored. Fails with ErrValidated once validated.
func (s *Service) SetCategory(id int, cat model.Category) error {
	if s.state == StateValidated {
		return ErrValidated
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Category = cat
			s.records[i].Inferred = false
			break
		}
	}
	return nil
}

// AutoCategorizeAll re-runs the classifier over every record, overwriting
// existing categories and marking them all inferred. A full overwrite, not
// a fill-in-blanks pass: manual edits are replaced too.
func (s *Service) AutoCategorizeAll() error {
	if s.state == StateValidated {
		return ErrValidated
	}
	for i := range s.records {
		s.records[i].Category = s.classifier.Classify(s.records[i].Description, s.records[i].Amount)
		s.records[i].Inferred = true
	}
	return nil
}

// Validate locks the set once every record has a category. Otherwise the
// session stays in editing and the error carries the uncategorized count.
func (s *Service) Validate() error {
	uncategorized := len(s.records) - s.CategorizedCount()
	if uncategorized > 0 {
		return &IncompleteCategorizationError{Uncategorized: uncategorized}
	}
	s.state = StateValidated
	return nil
}

// Summary aggregates the validated set. Recomputed on each call; any path
// back to editing makes it unavailable rather than stale.
func (s *Service) Summary() (report.Summary, error) {
	if s.state != StateValidated {
		return report.Summary{}, ErrNotValidated
	}
	return report.Aggregate(s.records), nil
}

// DailySales returns the per-day sales series for the validated set.
func (s *Service) DailySales() ([]report.DailySale, error) {
	if s.state != StateValidated {
		return nil, ErrNotValidated
	}
	return report.DailySales(s.records), nil
}
