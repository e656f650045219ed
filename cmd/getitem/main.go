package main

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jacoelho/getitem/internal/config"
	"github.com/jacoelho/getitem/internal/exit"
	"github.com/jacoelho/getitem/internal/logger"
	"github.com/jacoelho/getitem/internal/output"
	"github.com/jacoelho/getitem/internal/pipeline"
	"github.com/jacoelho/getitem/internal/rows"
	"github.com/jacoelho/getitem/internal/slice"
	"github.com/jacoelho/getitem/internal/source"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		return fail(err, stdout, stderr)
	}

	log := logger.New(stderr, cfg.Debug)
	defer func() { _ = log.Sync() }()

	warnDiscardedSegments(log, "row_spec", cfg.RowText)
	warnDiscardedSegments(log, "col_spec", cfg.ColText)

	var src source.Source
	if cfg.InputFile != "" {
		src = source.NewFile(cfg.InputFile)
	} else {
		src = source.NewStream("stdin", stdin)
	}

	w, err := output.New(stdout, cfg.Format)
	if err != nil {
		return fail(err, stdout, stderr)
	}

	selector := rows.New(src, cfg.Rows, rows.WithLogger(log))

	_, err = pipeline.Run(selector.Rows(), cfg.Columns, w, pipeline.Options{
		Workers: cfg.Workers,
		Logger:  log,
	})
	if err != nil {
		return fail(err, stdout, stderr)
	}

	return exit.CodeOK
}

func fail(err error, stdout, stderr io.Writer) int {
	result := exit.FromError(err, stdout, stderr)
	result.Print()
	return result.ExitCode
}

func warnDiscardedSegments(log *zap.Logger, name, text string) {
	if n := slice.Segments(text); n > 2 {
		log.Debug("ignoring slice segments after the second colon",
			zap.String("argument", name),
			zap.String("spec", text),
			zap.Int("segments", n))
	}
}
