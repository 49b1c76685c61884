package parser

// Kind classifies a line against a format's header pattern.
type Kind int

const (
	Continuation Kind = iota // does not match the header pattern
	Header                   // opens a new record
)

func (k Kind) String() string {
	if k == Header {
		return "header"
	}
	return "continuation"
}

// Classify reports whether line opens a new record under p, and if so
// returns its captures.
func Classify(p *Pattern, line string) (Kind, Captures) {
	if caps := p.Match(line); caps != nil {
		return Header, caps
	}
	return Continuation, nil
}

// Outcome describes what an Assembler did with one line.
type Outcome int

const (
	Opened   Outcome = iota // header: previous record sealed, new one opened
	Appended                // continuation folded into the open record
	Dropped                 // no open record to fold into, or single-line format
)

// Assembler folds a sequence of lines into sealed records of type T.
//
// A header line seals the open record (if any) and opens a new one built by
// open. A continuation line is passed to extend together with the open
// record; with no open record it is dropped. When extend is nil every header
// is sealed immediately and every continuation is dropped.
//
// An Assembler owns its open record and is not safe for concurrent use.
type Assembler[T any] struct {
	pattern *Pattern
	open    func(Captures) T
	extend  func(*T, string)

	current *T
	sealed  []T
	dropped int
}

// NewAssembler returns an Assembler for pattern p.
func NewAssembler[T any](p *Pattern, open func(Captures) T, extend func(*T, string)) *Assembler[T] {
	return &Assembler[T]{pattern: p, open: open, extend: extend}
}

// Feed classifies line and folds it into the record sequence.
func (a *Assembler[T]) Feed(line string) Outcome {
	kind, caps := Classify(a.pattern, line)
	switch {
	case kind == Header && a.extend == nil:
		a.sealed = append(a.sealed, a.open(caps))
		return Opened
	case kind == Header:
		a.seal()
		rec := a.open(caps)
		a.current = &rec
		return Opened
	case a.current != nil && a.extend != nil:
		a.extend(a.current, line)
		return Appended
	default:
		a.dropped++
		return Dropped
	}
}

// Finish seals the open record and returns every sealed record in input
// order. The Assembler must not be fed after Finish.
func (a *Assembler[T]) Finish() []T {
	a.seal()
	return a.sealed
}

// Dropped returns the number of lines discarded so far.
func (a *Assembler[T]) Dropped() int {
	return a.dropped
}

func (a *Assembler[T]) seal() {
	if a.current == nil {
		return
	}
	a.sealed = append(a.sealed, *a.current)
	a.current = nil
}

// appendLine is the continuation rule shared by multi-line formats.
func appendLine(msg *string, line string) {
	*msg += "\n" + line
}
