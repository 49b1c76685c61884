package aggregator

import (
	"sort"
	"strings"

	"github.com/atikulmunna/logsift/internal/model"
	"github.com/atikulmunna/logsift/internal/parser"
)

// Stats holds the totals of one parse run.
type Stats struct {
	Format      model.Format     `json:"format"`
	Files       int              `json:"files"`
	Lines       int              `json:"lines"`
	Parsed      int              `json:"parsed"`
	Emitted     int              `json:"emitted"`
	Filtered    int              `json:"filtered"`
	Skipped     int              `json:"skipped"`
	LevelCounts map[string]int64 `json:"level_counts"`
}

// Levels returns the keys of LevelCounts in sorted order.
func (s Stats) Levels() []string {
	keys := make([]string, 0, len(s.LevelCounts))
	for k := range s.LevelCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Aggregator accumulates driver results, one file at a time.
type Aggregator struct {
	stats Stats
}

// New creates an Aggregator for a run of the given format.
func New(format model.Format) *Aggregator {
	return &Aggregator{stats: Stats{Format: format, LevelCounts: make(map[string]int64)}}
}

// Add records the result of parsing one file.
func (a *Aggregator) Add(res parser.Result[model.Record]) {
	a.stats.Files++
	a.stats.Lines += res.Lines
	a.stats.Parsed += res.Parsed
	a.stats.Skipped += res.Skipped
	a.stats.Emitted += len(res.Records)
	a.stats.Filtered += res.Parsed - len(res.Records)
	for _, rec := range res.Records {
		a.stats.LevelCounts[levelKey(rec)]++
	}
}

// Snapshot returns a copy of the current totals.
func (a *Aggregator) Snapshot() Stats {
	s := a.stats
	s.LevelCounts = make(map[string]int64, len(a.stats.LevelCounts))
	for k, v := range a.stats.LevelCounts {
		s.LevelCounts[k] = v
	}
	return s
}

// levelKey buckets a record by severity, or by status class for access logs.
func levelKey(rec model.Record) string {
	if sev, ok := rec.Field(model.KeySeverity); ok {
		return strings.ToUpper(sev)
	}
	if status, ok := rec.Field(model.KeyStatus); ok && status != "" {
		return status[:1] + "xx"
	}
	return "UNKNOWN"
}
