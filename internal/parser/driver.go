package parser

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/atikulmunna/logsift/internal/filter"
	"github.com/atikulmunna/logsift/internal/input"
	"github.com/atikulmunna/logsift/internal/model"
)

// Options configures a driver run.
type Options struct {
	// Source names the input in diagnostics and errors.
	Source string

	// Filter selects which sealed records are returned.
	Filter filter.Set

	// MaxLineSize bounds a single line; 0 selects input.DefaultMaxLineSize.
	MaxLineSize int

	// Logger receives per-line debug output. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger
}

// Result is the outcome of one driver run.
type Result[T model.Record] struct {
	Records []T // filtered records, in file order
	Lines   int // lines read
	Parsed  int // records sealed before filtering
	Skipped int // lines dropped without becoming part of a record
}

// ParseLaravel reads a Laravel application log.
func ParseLaravel(r io.Reader, opts Options) (Result[model.AppRecord], error) {
	a := NewAssembler(LaravelPattern,
		func(c Captures) model.AppRecord {
			return model.AppRecord{Timestamp: c[0], Severity: c[1], Message: c[2]}
		},
		func(rec *model.AppRecord, line string) { appendLine(&rec.Message, line) },
	)
	return run(r, a, opts)
}

// ParseApache reads an Apache error log.
func ParseApache(r io.Reader, opts Options) (Result[model.ErrorRecord], error) {
	a := NewAssembler(ApachePattern,
		func(c Captures) model.ErrorRecord {
			return model.ErrorRecord{Timestamp: c[0], Severity: c[1], ProcessID: c[2], Message: c[3]}
		},
		func(rec *model.ErrorRecord, line string) { appendLine(&rec.Message, line) },
	)
	return run(r, a, opts)
}

// ParseAccess reads a combined access log. Access records never span
// lines, so lines that do not match are dropped.
func ParseAccess(r io.Reader, opts Options) (Result[model.AccessRecord], error) {
	a := NewAssembler(AccessPattern,
		func(c Captures) model.AccessRecord {
			return model.AccessRecord{
				ClientIP:     c[0],
				Timestamp:    c[1],
				HTTPMethod:   c[2],
				RequestURL:   c[3],
				Protocol:     c[4],
				StatusCode:   c[5],
				ResponseSize: c[6],
				Referrer:     c[7],
				UserAgent:    c[8],
			}
		},
		nil,
	)
	return run(r, a, opts)
}

// Parse runs the driver for format and returns its records behind the
// model.Record interface.
func Parse(format model.Format, r io.Reader, opts Options) (Result[model.Record], error) {
	switch format {
	case model.FormatLaravel:
		res, err := ParseLaravel(r, opts)
		return erase(res), err
	case model.FormatApache:
		res, err := ParseApache(r, opts)
		return erase(res), err
	case model.FormatAccess:
		res, err := ParseAccess(r, opts)
		return erase(res), err
	}
	return Result[model.Record]{}, fmt.Errorf("unknown log format %q", format)
}

func run[T model.Record](r io.Reader, a *Assembler[T], opts Options) (Result[T], error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{"source": opts.Source, "format": a.pattern.Format})

	rd := input.NewReader(r, opts.MaxLineSize)
	for {
		line, ok := rd.Next()
		if !ok {
			break
		}
		if a.Feed(line) == Dropped {
			log.WithFields(logrus.Fields{"lineno": rd.Line(), "line": line}).Debug("dropped unmatched line")
		}
	}
	if err := rd.Err(); err != nil {
		return Result[T]{}, &input.InputError{Path: opts.Source, Line: rd.Line(), Err: err}
	}

	sealed := a.Finish()
	res := Result[T]{
		Records: filter.Apply(opts.Filter, sealed),
		Lines:   rd.Line(),
		Parsed:  len(sealed),
		Skipped: a.Dropped(),
	}
	log.WithFields(logrus.Fields{
		"lines":   res.Lines,
		"records": len(res.Records),
		"skipped": res.Skipped,
	}).Debug("parsed input")
	return res, nil
}

func erase[T model.Record](res Result[T]) Result[model.Record] {
	recs := make([]model.Record, len(res.Records))
	for i, r := range res.Records {
		recs[i] = r
	}
	return Result[model.Record]{Records: recs, Lines: res.Lines, Parsed: res.Parsed, Skipped: res.Skipped}
}
