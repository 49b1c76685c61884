package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logsift/internal/aggregator"
	"github.com/atikulmunna/logsift/internal/filter"
	"github.com/atikulmunna/logsift/internal/input"
	"github.com/atikulmunna/logsift/internal/model"
	"github.com/atikulmunna/logsift/internal/output"
	"github.com/atikulmunna/logsift/internal/parser"
)

// ErrSkippedLines is returned in strict mode when lines were dropped.
var ErrSkippedLines = errors.New("lines did not match the selected format")

const usageNoFormat = "Please specify the log type with --laravel, --apache, or --access."

type parseFlags struct {
	laravel bool
	apache  bool
	access  bool
	filter  filter.Set
}

func (f parseFlags) format() (model.Format, bool) {
	switch {
	case f.laravel:
		return model.FormatLaravel, true
	case f.apache:
		return model.FormatApache, true
	case f.access:
		return model.FormatAccess, true
	}
	return "", false
}

func newParseCmd(v *viper.Viper) *cobra.Command {
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "parse [--laravel|--apache|--access] [paths...]",
		Short: "Parse log files into structured records",
		Long: `Parse one or more log files (or glob patterns) of a single format,
print the matching records and save them to <format>_log_output.json.

Examples:
  logsift parse --laravel storage/logs/laravel.log --type error
  logsift parse --apache /var/log/apache2/error.log --date "Aug 22"
  logsift parse --access "/var/log/nginx/**/access.log" --status 404 --method get`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, v, pf, args)
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&pf.laravel, "laravel", false, "Indicates the log is a Laravel log")
	fl.BoolVar(&pf.apache, "apache", false, "Indicates the log is an Apache error log")
	fl.BoolVar(&pf.access, "access", false, "Indicates the log is an access log")
	cmd.MarkFlagsMutuallyExclusive("laravel", "apache", "access")

	fl.StringVar(&pf.filter.Date, "date", "", "Filter logs by date substring (e.g., 2024-08-22)")
	fl.StringVar(&pf.filter.Type, "type", "", "Filter Laravel/Apache logs by severity (e.g., ERROR)")
	fl.StringVar(&pf.filter.Status, "status", "", "Filter access logs by HTTP status code (e.g., 200, 404)")
	fl.StringVar(&pf.filter.Method, "method", "", "Filter access logs by HTTP method (e.g., GET, POST)")

	fl.Bool("strict", false, "fail when any line is dropped as unmatched")
	fl.Bool("summary", false, "print a run summary to stderr")
	cobra.CheckErr(v.BindPFlag(keyStrict, fl.Lookup("strict")))
	cobra.CheckErr(v.BindPFlag(keySummary, fl.Lookup("summary")))

	return cmd
}

func runParse(cmd *cobra.Command, v *viper.Viper, pf parseFlags, args []string) error {
	format, ok := pf.format()
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), usageNoFormat)
		return nil
	}

	renderer, err := output.NewRenderer(v.GetString(keyOutput), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	sink, err := newSink(v)
	if err != nil {
		return err
	}

	paths, err := input.Expand(args)
	if err != nil {
		return err
	}

	agg := aggregator.New(format)
	records, err := parseAll(format, paths, pf.filter, agg)
	if err != nil {
		return err
	}

	var serr *output.SerializationError
	if err := renderer.Render(records); err != nil {
		if !errors.As(err, &serr) {
			return fmt.Errorf("render output: %w", err)
		}
		logrus.WithError(err).Error("failed to render records")
	}

	switch path, err := sink.Write(format, records); {
	case errors.As(err, &serr):
		logrus.WithError(err).Error("output not saved")
	case err != nil:
		return err
	default:
		logrus.WithField("path", path).Info("output saved")
	}

	stats := agg.Snapshot()
	if v.GetBool(keySummary) {
		if err := output.RenderSummary(cmd.ErrOrStderr(), stats); err != nil {
			return err
		}
	}
	if v.GetBool(keyStrict) && stats.Skipped > 0 {
		return fmt.Errorf("strict mode: %d %w", stats.Skipped, ErrSkippedLines)
	}
	return nil
}

// parseAll runs the driver for format over each path in turn and
// concatenates the records in path order.
func parseAll(format model.Format, paths []string, fs filter.Set, agg *aggregator.Aggregator) ([]model.Record, error) {
	records := []model.Record{}
	for _, path := range paths {
		f, err := input.Open(path)
		if err != nil {
			return nil, err
		}
		res, err := parser.Parse(format, f, parser.Options{Source: path, Filter: fs})
		f.Close()
		if err != nil {
			return nil, err
		}
		agg.Add(res)
		records = append(records, res.Records...)
	}
	return records, nil
}

func newSink(v *viper.Viper) (output.Sink, error) {
	enc, err := output.ParseEncoding(v.GetString(keyFileFormat))
	if err != nil {
		return output.Sink{}, err
	}
	dir := v.GetString(keyOutDir)
	if dir == "" {
		if dir, err = output.DefaultDir(runtime.GOOS); err != nil {
			return output.Sink{}, err
		}
	}
	return output.Sink{Dir: dir, Encoding: enc}, nil
}
