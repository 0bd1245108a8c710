// Package pipeline runs the load, validate and export sequence with the
// schema gate: required columns are checked first and, when any is absent,
// no other check runs and no workbook is written.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/alexanderjulianmartinez/data-quality/internal/quality"
	"github.com/alexanderjulianmartinez/data-quality/internal/report"
	"github.com/alexanderjulianmartinez/data-quality/internal/source"
	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

var (
	// ErrConfiguration marks failures that happen before or instead of any
	// check: unreadable input, bad column lists, checks that cannot run.
	ErrConfiguration = errors.New("configuration error")
	// ErrExport marks a failed workbook write.
	ErrExport = errors.New("export failed")
	// ErrSink marks a failed history or publish step. The report is still valid.
	ErrSink = errors.New("report sink failed")
)

// State is a stage of a run. Outcome.Trail records the states entered.
type State string

const (
	StateLoaded         State = "loaded"
	StateSchemaChecked  State = "schema_checked"
	StateGated          State = "gated"
	StateFullyValidated State = "fully_validated"
	StateExported       State = "exported"
)

// Exporter writes a report to path.
type Exporter func(rep *types.Report, path string) error

// Recorder stores a finished report, typically as history rows.
type Recorder interface {
	Record(ctx context.Context, runID, source string, rep *types.Report) error
}

// Publisher announces a finished report to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, runID, source string, gated bool, rep *types.Report) error
}

// Options configures a Pipeline. RequiredColumns must not be empty.
type Options struct {
	RequiredColumns   []string
	AllowedCategories []string
	OutputPath        string
	Runner            quality.Runner
	// Export defaults to report.ExportExcel.
	Export Exporter
	// Console receives the rendered report when non-nil.
	Console   io.Writer
	Recorder  Recorder
	Publisher Publisher
	// NewRunID defaults to a random UUID.
	NewRunID func() string
}

// Pipeline validates the table produced by one loader.
type Pipeline struct {
	loader source.Loader
	opts   Options
}

// Outcome describes a finished run.
type Outcome struct {
	RunID      string
	State      State
	Report     *types.Report
	OutputPath string
	// Trail lists every state entered, in order.
	Trail []State
}

func (o *Outcome) enter(s State) {
	o.State = s
	o.Trail = append(o.Trail, s)
}

// Gated reports whether the run stopped at the schema check.
func (o *Outcome) Gated() bool {
	return o.State == StateGated
}

// New fills unset options with their defaults.
func New(loader source.Loader, opts Options) *Pipeline {
	if opts.Export == nil {
		opts.Export = report.ExportExcel
	}
	if opts.NewRunID == nil {
		opts.NewRunID = func() string { return uuid.NewString() }
	}
	if opts.AllowedCategories == nil {
		opts.AllowedCategories = quality.DefaultAllowedCategories
	}
	return &Pipeline{loader: loader, opts: opts}
}

// Run executes one pass. On the gated path the outcome is returned without an
// error and without a written workbook.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	out := &Outcome{RunID: p.opts.NewRunID()}
	logger := log.WithFields(log.Fields{"run_id": out.RunID, "source": p.loader.Name()})

	if len(p.opts.RequiredColumns) == 0 {
		return nil, fmt.Errorf("%w: required column list is empty", ErrConfiguration)
	}

	table, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load input: %w", ErrConfiguration, err)
	}
	out.enter(StateLoaded)
	logger.WithFields(log.Fields{"rows": table.Len(), "columns": len(table.Columns())}).Info("table loaded")

	rep, gated, err := p.Validate(ctx, table)
	if err != nil {
		return nil, err
	}
	out.Report = rep
	out.enter(StateSchemaChecked)
	if gated {
		out.enter(StateGated)
		logger.WithField("details", rep.Rows[0].Details).Warn("schema check failed, pipeline stopped")
	} else {
		out.enter(StateFullyValidated)
		logger.WithField("failed", rep.Failed()).Info("validation finished")
	}
	for _, row := range rep.Rows {
		logger.WithFields(log.Fields{
			"test_id": row.TestID,
			"result":  row.Result,
			"issues":  row.IssuesCount,
		}).Debug("check result")
	}

	if p.opts.Console != nil {
		if err := report.Print(p.opts.Console, rep); err != nil {
			logger.WithError(err).Warn("print report")
		}
	}

	if !gated {
		if err := p.opts.Export(rep, p.opts.OutputPath); err != nil {
			return out, fmt.Errorf("%w: %s: %w", ErrExport, p.opts.OutputPath, err)
		}
		out.enter(StateExported)
		out.OutputPath = p.opts.OutputPath
		logger.WithField("path", out.OutputPath).Info("report exported")
	}

	return out, p.deliver(ctx, logger, out)
}

// Validate applies the schema gate and, if it passes, the full check suite.
// gated is true when the returned report holds the single schema failure row.
func (p *Pipeline) Validate(ctx context.Context, table *source.Table) (rep *types.Report, gated bool, err error) {
	schema, err := quality.CheckRequiredColumns(table, p.opts.RequiredColumns)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if !schema.Passed {
		return GatedReport(schema), true, nil
	}

	rows, err := p.opts.Runner.Run(ctx, table, quality.Suite(p.opts.RequiredColumns, p.opts.AllowedCategories))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return report.Assemble(rows), false, nil
}

// GatedReport builds the one-row report emitted when the schema check fails.
func GatedReport(schema types.CheckResult) *types.Report {
	row := quality.NewReportRow(schema)
	row.Result = types.StatusFailed
	row.Observations = quality.ObservationSchemaGate
	return report.Assemble([]types.ReportRow{row})
}

func (p *Pipeline) deliver(ctx context.Context, logger *log.Entry, out *Outcome) error {
	var errs []error
	if p.opts.Recorder != nil {
		if err := p.opts.Recorder.Record(ctx, out.RunID, p.loader.Name(), out.Report); err != nil {
			logger.WithError(err).Error("record history")
			errs = append(errs, fmt.Errorf("history: %w", err))
		} else {
			logger.Info("history recorded")
		}
	}
	if p.opts.Publisher != nil {
		if err := p.opts.Publisher.Publish(ctx, out.RunID, p.loader.Name(), out.Gated(), out.Report); err != nil {
			logger.WithError(err).Error("publish report")
			errs = append(errs, fmt.Errorf("publish: %w", err))
		} else {
			logger.Info("report published")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrSink, errors.Join(errs...))
	}
	return nil
}
