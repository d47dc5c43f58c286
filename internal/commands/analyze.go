package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bankscope-dev/bankscope/internal/analyzer"
	"github.com/bankscope-dev/bankscope/internal/auditlog"
	"github.com/bankscope-dev/bankscope/internal/export"
	"github.com/bankscope-dev/bankscope/internal/logging"
	"github.com/bankscope-dev/bankscope/internal/model"
	"github.com/bankscope-dev/bankscope/internal/report"
	"github.com/bankscope-dev/bankscope/internal/statement"
)

func newAnalyzeCommand() *cobra.Command {
	var configPath string
	var sets []string
	var auto bool
	var noExport bool

	cmd := &cobra.Command{
		Use:   "analyze <statement-file>",
		Short: "Categorize a bank statement and report financial metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], configPath, sets, auto, !noExport)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default bankscope.yaml if present)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "manual category override, id=category (repeatable)")
	cmd.Flags().BoolVar(&auto, "auto", false, "re-run the classifier over every row before overrides")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "skip writing CSV exports")

	return cmd
}

func runAnalyze(file, configPath string, sets []string, auto, doExport bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level)

	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}

	reader := statement.DefaultRegistry().Get(filepath.Ext(file))
	if reader == nil {
		reader = &statement.TextReader{}
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	text, err := reader.ReadText(f)
	if err != nil {
		return err
	}

	svc := analyzer.NewService(cfg.Statement(), classifier)
	if err := svc.Ingest(text); err != nil {
		var perr *statement.ParseError
		if errors.As(err, &perr) {
			log.Error().Str("file", file).Str("kind", string(perr.Kind)).Msg(perr.Title())
			return fmt.Errorf("%s", perr.Message())
		}
		return err
	}
	log.Info().Str("file", file).Int("records", svc.Len()).
		Int("inferred", svc.InferredCount()).Msg("statement ingested")

	runID := uuid.NewString()
	entries := []auditlog.Entry{{
		Timestamp: time.Now(),
		RunID:     runID,
		Action:    "ingest",
		File:      file,
		Records:   svc.Len(),
		Details:   fmt.Sprintf("%d auto-categorized", svc.InferredCount()),
	}}

	if auto {
		if err := svc.AutoCategorizeAll(); err != nil {
			return err
		}
		entries = append(entries, auditlog.Entry{
			Timestamp: time.Now(), RunID: runID, Action: "auto-categorize",
			File: file, Records: svc.Len(),
		})
	}

	for _, s := range sets {
		id, cat, err := parseOverride(s)
		if err != nil {
			return err
		}
		if err := svc.SetCategory(id, cat); err != nil {
			return err
		}
	}

	if err := svc.Validate(); err != nil {
		var ierr *analyzer.IncompleteCategorizationError
		if errors.As(err, &ierr) {
			printUncategorized(svc.Records())
		}
		return err
	}
	entries = append(entries, auditlog.Entry{
		Timestamp: time.Now(), RunID: runID, Action: "validate",
		File: file, Records: svc.Len(),
	})

	summary, err := svc.Summary()
	if err != nil {
		return err
	}
	daily, err := svc.DailySales()
	if err != nil {
		return err
	}
	printSummary(summary, daily)

	if doExport {
		outDir := cfg.Output.Dir
		if outDir == "" {
			outDir = "."
		}
		if err := writeExports(outDir, svc.Records(), summary, daily); err != nil {
			return err
		}
		log.Info().Str("dir", outDir).Msg("exports written")
		entries = append(entries, auditlog.Entry{
			Timestamp: time.Now(), RunID: runID, Action: "export",
			File: file, Records: svc.Len(), Details: outDir,
		})
		if err := auditlog.Append(outDir, entries); err != nil {
			log.Warn().Err(err).Msg("failed to write run log")
		}
	}
	return nil
}

// parseOverride parses an "id=category" flag value.
func parseOverride(s string) (int, model.Category, error) {
	idStr, catStr, ok := strings.Cut(s, "=")
	if !ok {
		return 0, model.CategoryUnset, fmt.Errorf("invalid --set %q, want id=category", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		return 0, model.CategoryUnset, fmt.Errorf("invalid id in --set %q: %w", s, err)
	}
	cat, ok := model.ParseCategory(strings.TrimSpace(catStr))
	if !ok {
		return 0, model.CategoryUnset, fmt.Errorf("unknown category in --set %q", s)
	}
	return id, cat, nil
}

func printUncategorized(txns []model.Transaction) {
	fmt.Println("Uncategorized transactions:")
	for _, t := range txns {
		if !t.Categorized() {
			fmt.Printf("  [%d] %s  %s  %s\n", t.ID, t.Date, t.Description, t.Amount.StringFixed(2))
		}
	}
}

func printSummary(s report.Summary, daily []report.DailySale) {
	fmt.Printf("Sales:            %s\n", s.Sales.StringFixed(2))
	fmt.Printf("Total cost:       %s\n", s.TotalCost.StringFixed(2))
	fmt.Printf("  general (%3d%%): %s\n", s.GeneralExpenseShare, s.GeneralExpenses.StringFixed(2))
	fmt.Printf("  payroll (%3d%%): %s\n", s.PayrollShare, s.Payroll.StringFixed(2))
	fmt.Printf("  materials (%3d%%): %s\n", s.RawMaterialShare, s.RawMaterials.StringFixed(2))
	fmt.Printf("Profit:           %s\n", s.Profit.StringFixed(2))
	fmt.Printf("Margin:           %s%%\n", s.Margin)

	if len(daily) > 0 {
		fmt.Println("Daily sales:")
		for _, d := range daily {
			fmt.Printf("  %s  %s\n", d.Date, d.Amount.StringFixed(2))
		}
	}
}

func writeExports(dir string, txns []model.Transaction, s report.Summary, daily []report.DailySale) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tf, err := os.Create(filepath.Join(dir, "categorized.csv"))
	if err != nil {
		return fmt.Errorf("creating transactions export: %w", err)
	}
	defer tf.Close()
	if err := export.WriteTransactions(tf, txns); err != nil {
		return err
	}

	sf, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary export: %w", err)
	}
	defer sf.Close()
	return export.WriteSummary(sf, s, daily)
}
