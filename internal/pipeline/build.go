package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderjulianmartinez/data-quality/internal/config"
	"github.com/alexanderjulianmartinez/data-quality/internal/history"
	"github.com/alexanderjulianmartinez/data-quality/internal/publish"
	"github.com/alexanderjulianmartinez/data-quality/internal/quality"
	"github.com/alexanderjulianmartinez/data-quality/internal/source"
	"github.com/alexanderjulianmartinez/data-quality/internal/source/csvfile"
	"github.com/alexanderjulianmartinez/data-quality/internal/source/mysql"
)

// FromConfig wires a pipeline and its collaborators. The returned close
// function releases every connection that was opened, and must be called even
// when Run fails.
func FromConfig(cfg *config.Config, console io.Writer) (*Pipeline, func() error, error) {
	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	loader, err := newLoader(cfg.Source, &closers)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	opts := Options{
		RequiredColumns:   cfg.Checks.RequiredColumns,
		AllowedCategories: cfg.Checks.AllowedCategories,
		OutputPath:        cfg.Report.Path,
		Runner:            quality.Runner{Parallel: cfg.Checks.Parallel},
	}
	if cfg.Report.ConsoleEnabled() {
		opts.Console = console
	}

	if cfg.History.Enabled() {
		rec, err := history.NewRecorder(cfg.History.DSN, cfg.History.Table)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("%w: history: %w", ErrConfiguration, err)
		}
		closers = append(closers, rec.Close)
		opts.Recorder = rec
	}

	if cfg.Publish.Enabled() {
		pub, err := publish.NewPublisher(cfg.Publish.Brokers, cfg.Publish.Topic)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("%w: publish: %w", ErrConfiguration, err)
		}
		closers = append(closers, pub.Close)
		opts.Publisher = pub
	}

	return New(loader, opts), closeAll, nil
}

func newLoader(cfg config.SourceConfig, closers *[]func() error) (source.Loader, error) {
	switch cfg.Type {
	case config.SourceMySQL:
		inspector, err := mysql.NewInspector(cfg.DSN, cfg.Schema)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, inspector.Close)
		return mysql.NewTableLoader(inspector, cfg.Table), nil
	case config.SourceCSV, "":
		return csvfile.NewLoader(cfg.Path, cfg.Encoding, cfg.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}
