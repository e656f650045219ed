package pipeline

import (
	"errors"
	"iter"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/getitem/internal/fields"
	"github.com/jacoelho/getitem/internal/output"
	"github.com/jacoelho/getitem/internal/rows"
	"github.com/jacoelho/getitem/internal/slice"
)

// DefaultBatchSize is the number of rows projected together when running
// with more than one worker.
const DefaultBatchSize = 512

type Options struct {
	// Workers above 1 project each batch concurrently. Output order is
	// unaffected.
	Workers   int
	BatchSize int
	Logger    *zap.Logger
}

// Stats counts what happened to the selected rows.
type Stats struct {
	Selected int
	Written  int
	Dropped  int
}

// Run projects every selected row with spec and writes the survivors to w in
// selection order. w is flushed even when reading fails, so rows already
// processed are not lost.
func Run(selected iter.Seq2[rows.Row, error], spec slice.Spec, w output.Writer, opts Options) (Stats, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		stats Stats
		err   error
	)
	if opts.Workers > 1 {
		stats, err = runBatched(selected, spec, w, opts)
	} else {
		stats, err = runSequential(selected, spec, w)
	}

	if flushErr := w.Flush(); flushErr != nil {
		err = errors.Join(err, flushErr)
	}

	log.Debug("pipeline finished",
		zap.String("columns", spec.String()),
		zap.Int("workers", max(opts.Workers, 1)),
		zap.Int("selected", stats.Selected),
		zap.Int("written", stats.Written),
		zap.Int("dropped", stats.Dropped))

	return stats, err
}

func runSequential(selected iter.Seq2[rows.Row, error], spec slice.Spec, w output.Writer) (Stats, error) {
	var stats Stats
	for row, err := range selected {
		if err != nil {
			return stats, err
		}
		stats.Selected++

		p, ok := fields.ProjectRecord(row.Record, spec)
		if err := stats.emit(w, row, p, ok); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

type projected struct {
	p  fields.Projection
	ok bool
}

func runBatched(selected iter.Seq2[rows.Row, error], spec slice.Spec, w output.Writer, opts Options) (Stats, error) {
	size := opts.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	var stats Stats
	batch := make([]rows.Row, 0, size)
	results := make([]projected, size)

	flush := func() error {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, row := range batch {
			g.Go(func() error {
				p, ok := fields.ProjectRecord(row.Record, spec)
				results[i] = projected{p: p, ok: ok}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, row := range batch {
			if err := stats.emit(w, row, results[i].p, results[i].ok); err != nil {
				return err
			}
		}
		batch = batch[:0]
		return nil
	}

	for row, err := range selected {
		if err != nil {
			if flushErr := flush(); flushErr != nil {
				return stats, errors.Join(err, flushErr)
			}
			return stats, err
		}
		stats.Selected++

		batch = append(batch, row)
		if len(batch) == size {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	return stats, flush()
}

func (s *Stats) emit(w output.Writer, row rows.Row, p fields.Projection, ok bool) error {
	if !ok {
		s.Dropped++
		return nil
	}
	if err := w.Write(output.Line{Row: row.Index, Projection: p}); err != nil {
		return err
	}
	s.Written++
	return nil
}
