// Package input opens log files and reads them line by line.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	DefaultMaxLineSize = 1024 * 1024 // 1MB max line size
	DefaultBufferSize  = 64 * 1024
)

// ErrNoFiles is returned when a glob pattern matches nothing.
var ErrNoFiles = errors.New("no files matched")

// InputError reports that a log file could not be opened or read.
type InputError struct {
	Path string
	Line int // last line read before the failure, 0 if none
	Err  error
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("read %s near line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Open opens path for reading. Failures are returned as *InputError.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return f, nil
}

// Expand resolves the given paths and glob patterns to a list of files.
// Literal paths are returned unchanged so that a missing file surfaces as an
// open error; patterns support recursive matching like /var/log/**/*.log.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		if !hasMeta(p) {
			paths = append(paths, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, &InputError{Path: p, Err: err}
		}
		if len(matches) == 0 {
			return nil, &InputError{Path: p, Err: ErrNoFiles}
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(filepath.ToSlash(p), "*?[{")
}

// Reader yields the lines of a UTF-8 text stream. A leading byte order mark
// is stripped; any other invalid UTF-8 stops the reader with
// encoding.ErrInvalidUTF8.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader wraps r. Lines longer than maxSize bytes stop the reader with
// bufio.ErrTooLong; maxSize <= 0 selects DefaultMaxLineSize.
func NewReader(r io.Reader, maxSize int) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxLineSize
	}
	validated := transform.NewReader(r, xunicode.BOMOverride(encoding.UTF8Validator))

	scanner := bufio.NewScanner(validated)
	scanner.Buffer(make([]byte, 0, min(DefaultBufferSize, maxSize)), maxSize)
	return &Reader{scanner: scanner}
}

// Next advances to the next line and returns it without its line ending.
// It returns false at end of input or on error; check Err afterwards.
func (r *Reader) Next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}

// Line returns the 1-based number of the last line returned by Next.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first non-EOF error encountered.
func (r *Reader) Err() error {
	return r.scanner.Err()
}
