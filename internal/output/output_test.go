package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/atikulmunna/logsift/internal/aggregator"
	"github.com/atikulmunna/logsift/internal/model"
	"github.com/atikulmunna/logsift/internal/parser"
)

var sample = []model.Record{
	model.AppRecord{Timestamp: "2024-08-22 10:00:00", Severity: "ERROR", Message: "Something failed\nStack trace line 1"},
	model.AppRecord{Timestamp: "2024-08-22 10:00:01", Severity: "INFO", Message: "recovered"},
}

func TestMarshalJSONFieldNames(t *testing.T) {
	data, err := Marshal(JSON, []model.Record{
		model.ErrorRecord{Timestamp: "Thu Aug 22 10:00:00.1 2024", Severity: "error", ProcessID: "12", Message: "boom"},
	})
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []map[string]string{{
		"timestamp": "Thu Aug 22 10:00:00.1 2024",
		"severity":  "error",
		"processId": "12",
		"message":   "boom",
	}}, got)
}

func TestMarshalAccessKeepsEmptyFields(t *testing.T) {
	data, err := Marshal(JSON, []model.Record{model.AccessRecord{
		ClientIP: "127.0.0.1", Timestamp: "22/Aug/2024:10:00:00 +0000", HTTPMethod: "GET",
		RequestURL: "/?a=1&b=<2>", Protocol: "HTTP/1.1", StatusCode: "200", ResponseSize: "1024",
	}})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"referrer": ""`)
	assert.Contains(t, out, `"userAgent": ""`)
	assert.Contains(t, out, `"requestUrl": "/?a=1&b=<2>"`)
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal(JSON, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	data, err = Marshal(YAML, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestMarshalYAML(t *testing.T) {
	data, err := Marshal(YAML, sample)
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Something failed\nStack trace line 1", got[0]["message"])
	assert.Equal(t, "INFO", got[1]["severity"])
}

func TestMarshalUnknownEncoding(t *testing.T) {
	_, err := Marshal("xml", sample)

	var serr *SerializationError
	assert.True(t, errors.As(err, &serr))
}

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding("yaml")
	require.NoError(t, err)
	assert.Equal(t, YAML, enc)

	_, err = ParseEncoding("csv")
	assert.Error(t, err)
}

func TestNewRenderer(t *testing.T) {
	for _, kind := range []string{"", "json", "JSON", "yaml", "text"} {
		_, err := NewRenderer(kind, &bytes.Buffer{})
		assert.NoError(t, err, kind)
	}
	_, err := NewRenderer("html", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer("json", &buf)
	require.NoError(t, err)
	require.NoError(t, r.Render(sample))

	var got []model.AppRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), buf.String())
	assert.Equal(t, []model.AppRecord{sample[0].(model.AppRecord), sample[1].(model.AppRecord)}, got)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(append(sample,
		model.AccessRecord{ClientIP: "10.0.0.1", Timestamp: "22/Aug/2024:10:00:00 +0000", HTTPMethod: "GET",
			RequestURL: "/", Protocol: "HTTP/1.1", StatusCode: "404", ResponseSize: "0"},
	)))

	out := buf.String()
	assert.Contains(t, out, "Something failed\n    Stack trace line 1")
	assert.Contains(t, out, "recovered")
	assert.Contains(t, out, "10.0.0.1")
	assert.Contains(t, out, "404")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"EMERGENCY": "FATAL",
		"crit":      "FATAL",
		"error":     "ERROR",
		"WARNING":   "WARN",
		"warn":      "WARN",
		"NOTICE":    "INFO",
		"debug":     "DEBUG",
		"trace3":    "DEBUG",
		"":          "INFO",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLevel(in), in)
	}
}

func TestStatusLevel(t *testing.T) {
	assert.Equal(t, "ERROR", StatusLevel("503"))
	assert.Equal(t, "WARN", StatusLevel("404"))
	assert.Equal(t, "INFO", StatusLevel("200"))
	assert.Equal(t, "INFO", StatusLevel(""))
}

func TestSinkWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	sink := Sink{Dir: dir, Encoding: JSON}

	path, err := sink.Write(model.FormatLaravel, sample)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "laravel_log_output.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []model.AppRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 2)

	// A second run replaces the artifact rather than appending to it.
	_, err = sink.Write(model.FormatLaravel, sample[:1])
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 1)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")
}

func TestSinkSerializationFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	sink := Sink{Dir: dir, Encoding: "xml"}

	_, err := sink.Write(model.FormatAccess, nil)
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "laravel_log_output.json", ArtifactName(model.FormatLaravel, JSON))
	assert.Equal(t, "apache_log_output.json", ArtifactName(model.FormatApache, JSON))
	assert.Equal(t, "access_log_output.yaml", ArtifactName(model.FormatAccess, YAML))
}

func TestDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir, err := DefaultDir("linux")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs"), dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir, err = DefaultDir("windows")
	require.NoError(t, err)
	assert.Equal(t, wd, dir)
}

func TestRenderSummary(t *testing.T) {
	agg := aggregator.New(model.FormatLaravel)
	agg.Add(parser.Result[model.Record]{Records: sample, Lines: 5, Parsed: 3, Skipped: 1})

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, agg.Snapshot()))

	out := buf.String()
	for _, want := range []string{"laravel log summary", "records", "skipped", "ERROR", "INFO"} {
		assert.Contains(t, out, want)
	}
}
