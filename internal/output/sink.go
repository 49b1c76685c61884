package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atikulmunna/logsift/internal/model"
)

// DefaultDir returns where artifacts are persisted on the given platform:
// the working directory on Windows, $HOME/logs elsewhere.
func DefaultDir(goos string) (string, error) {
	if goos == "windows" {
		return os.Getwd()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "logs"), nil
}

// ArtifactName returns the file name of the artifact for format, such as
// laravel_log_output.json.
func ArtifactName(format model.Format, enc Encoding) string {
	return fmt.Sprintf("%s_log_output.%s", format, enc)
}

// Sink persists one artifact per format under Dir.
type Sink struct {
	Dir      string
	Encoding Encoding
}

// Path returns the artifact path for format.
func (s Sink) Path(format model.Format) string {
	return filepath.Join(s.Dir, ArtifactName(format, s.Encoding))
}

// Write serializes recs and replaces the artifact for format. Nothing is
// written if serialization fails. The returned path is the artifact written.
func (s Sink) Write(format model.Format, recs []model.Record) (string, error) {
	data, err := Marshal(s.Encoding, recs)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := s.Path(format)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// writeAtomic writes to a temp file first, then renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
