// Package parser turns raw log lines into sealed records.
//
// Every supported format is declared as a Pattern: an anchored regular
// expression plus the ordered list of named groups a record is built from.
// An Assembler folds lines into records using that pattern, and the Parse*
// drivers compose reading, assembly and filtering for one format.
package parser

import (
	"fmt"
	"regexp"

	"github.com/atikulmunna/logsift/internal/model"
)

// Pattern is the extraction pattern of one log format.
type Pattern struct {
	Format model.Format
	Expr   string
	Fields []string // named groups handed to the record builder, in order

	re  *regexp.Regexp
	idx []int // submatch index of each entry in Fields
}

// Captures holds the values of a Pattern's Fields for one matched line,
// in the same order as Fields.
type Captures []string

// NewPattern compiles expr and resolves fields to submatch indexes.
// Every field must name a group in expr.
func NewPattern(format model.Format, expr string, fields ...string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern: %w", format, err)
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		idx[i] = re.SubexpIndex(f)
		if idx[i] < 0 {
			return nil, fmt.Errorf("invalid %s pattern: no group named %q", format, f)
		}
	}
	return &Pattern{Format: format, Expr: expr, Fields: fields, re: re, idx: idx}, nil
}

func mustPattern(format model.Format, expr string, fields ...string) *Pattern {
	p, err := NewPattern(format, expr, fields...)
	if err != nil {
		panic(err)
	}
	return p
}

// Match returns the captures of line, or nil if the whole line does not match.
func (p *Pattern) Match(line string) Captures {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	caps := make(Captures, len(p.idx))
	for i, j := range p.idx {
		caps[i] = m[j]
	}
	return caps
}

// ---------------------------------------------------------------------------
// Format table
// ---------------------------------------------------------------------------

// LaravelPattern matches the header line of a Laravel log entry:
//
//	[2024-08-22 10:00:00] local.ERROR: Something failed
//
// The environment name is matched but not kept.
var LaravelPattern = mustPattern(model.FormatLaravel,
	`^\[(?P<date>\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] (?P<env>\w+)\.(?P<level>\w+): (?P<message>.+)$`,
	"date", "level", "message",
)

// ApachePattern matches an Apache 2.4 error log line:
//
//	[Thu Aug 22 10:00:00.123456 2024] [core:error] [pid 1234:tid 5678] [client 10.0.0.1:5000] AH00126: Invalid URI
//
// Module, thread id and client address are matched but not kept; the tid
// and client clauses are optional.
var ApachePattern = mustPattern(model.FormatApache,
	`^\[(?P<date>[A-Za-z]{3} [A-Za-z]{3} \d{2} \d{2}:\d{2}:\d{2}\.\d+ \d{4})\] `+
		`\[(?P<module>[^:\]]+):(?P<level>[^\]]+)\] `+
		`\[pid (?P<pid>\d+)(?::tid \d+)?\]`+
		`(?: \[client (?P<client>[^\]]+)\])? `+
		`(?P<message>.+)$`,
	"date", "level", "pid", "message",
)

// AccessPattern matches a combined access log line:
//
//	127.0.0.1 - - [22/Aug/2024:10:00:00 +0000] "GET /index.html HTTP/1.1" 200 1024 "-" "Mozilla/5.0"
var AccessPattern = mustPattern(model.FormatAccess,
	`^(?P<ip>\S+) - - \[(?P<datetime>[^\]]+)\] `+
		`"(?P<method>\S+) (?P<url>\S+) (?P<protocol>[^"]+)" `+
		`(?P<status>\d+) (?P<size>\d+) `+
		`"(?P<referrer>[^"]*)" "(?P<user_agent>[^"]*)"$`,
	"ip", "datetime", "method", "url", "protocol", "status", "size", "referrer", "user_agent",
)
