package main

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
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/studentperf-go/pkg/studentperf"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/output"
)

const classCSV = "Name,Math,Science\nAlice,90,80\nBob,30,40\nCara,88,\n"

type cliEnv struct {
	dir   string
	cache string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	t.Setenv("SPA_CONFIG", "")
	dir := t.TempDir()
	return cliEnv{dir: dir, cache: filepath.Join(dir, "cache", "last.csv")}
}

func (e cliEnv) writeInput(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

// run executes the CLI with a file cache under the test directory.
func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--cache-backend", "file", "--cache-path", e.cache, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestAnalyzeText(t *testing.T) {
	env := newCLIEnv(t)
	input := env.writeInput(t, "class.csv", classCSV)

	out, err := env.run(t, "", "analyze", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Subjects: Math, Science")
	assert.Contains(t, out, "Total students: 3")
	assert.Contains(t, out, "Class average: 69.33")
	assert.Contains(t, out, "Cara")

	cached, err := os.ReadFile(env.cache)
	require.NoError(t, err)
	assert.Equal(t, classCSV, string(cached))
}

func TestAnalyzeJSONFromStdin(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, classCSV, "analyze", "-", "--format", "json", "--min-avg", "80", "--sort", "avg_desc")
	require.NoError(t, err)

	var doc output.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "stdin", doc.Source)
	require.Len(t, doc.Metrics.Students, 2)
	assert.Equal(t, "Cara", doc.Metrics.Students[0].Name)
	assert.Equal(t, 69.33, doc.Metrics.ClassAverage)
}

func TestAnalyzeRestore(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "", "analyze", "--restore")
	assert.ErrorIs(t, err, studentperf.ErrNoData)

	_, err = env.run(t, classCSV, "analyze")
	require.NoError(t, err)

	out, err := env.run(t, "", "analyze", "--restore", "--sort", "name")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
}

func TestAnalyzeErrors(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  error
	}{
		{"empty input", "   ", []string{"analyze"}, studentperf.ErrEmptyInput},
		{"header only name", "Name\nAlice", []string{"analyze"}, studentperf.ErrMalformedHeader},
		{"missing file", "", []string{"analyze", filepath.Join(env.dir, "nope.csv")}, os.ErrNotExist},
		{"bad sort", classCSV, []string{"analyze", "--sort", "grade"}, studentperf.ErrUnknownSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.stdin, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var inputErr *studentperf.InputError
	_, err := env.run(t, "", "analyze", filepath.Join(env.dir, "nope.csv"))
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, filepath.Join(env.dir, "nope.csv"), inputErr.Source)

	_, err = env.run(t, classCSV, "analyze", "--format", "yaml")
	assert.Error(t, err)
}

func TestAddAndSave(t *testing.T) {
	env := newCLIEnv(t)
	input := env.writeInput(t, "class.csv", classCSV)
	saved := filepath.Join(env.dir, "updated.csv")

	out, err := env.run(t, "", "add", input, "--name", "Dan", "--marks", "70, 72", "--save", saved, "--format", "json")
	require.NoError(t, err)

	var doc output.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Metrics.Students, 4)
	assert.Equal(t, 71.0, doc.Metrics.Students[3].Average)

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, classCSV+"Dan,70,72\n", string(data))
}

func TestAddWithoutData(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "add", "--name", "Solo", "--marks", "50,60,70")
	require.NoError(t, err)
	assert.Contains(t, out, "Subjects: Subject 1, Subject 2, Subject 3")

	_, err = env.run(t, "", "add", "--name", "Solo")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	env := newCLIEnv(t)
	input := env.writeInput(t, "class.csv", classCSV)

	out, err := env.run(t, "", "export", input)
	require.NoError(t, err)
	assert.Equal(t, classCSV, out)

	dest := filepath.Join(env.dir, "out.csv")
	_, err = env.run(t, "", "export", "-o", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, classCSV, string(data))
}

func TestReport(t *testing.T) {
	env := newCLIEnv(t)
	input := env.writeInput(t, "class.csv", classCSV)
	dest := filepath.Join(env.dir, "report.xlsx")

	_, err := env.run(t, "", "report", input, "-o", dest)
	require.NoError(t, err)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(output.ReportSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", v)
}

func TestReportInspect(t *testing.T) {
	env := newCLIEnv(t)
	input := env.writeInput(t, "class.csv", classCSV)
	dest := filepath.Join(env.dir, "report.xlsx")

	out, err := env.run(t, "", "report", input, "-o", dest, "--inspect")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "chart1.xml\tColumn\t"+output.AveragesChartTitle+"\t1 series", lines[0])
	assert.Contains(t, lines[1], "Line")
	assert.Contains(t, lines[2], "Pie")
}

func TestAnalyzeWritesReportAndOutput(t *testing.T) {
	env := newCLIEnv(t)
	input := env.writeInput(t, "class.csv", classCSV)
	dest := filepath.Join(env.dir, "metrics.json")
	report := filepath.Join(env.dir, "r.xlsx")

	out, err := env.run(t, "", "analyze", input, "--format", "json", "--pretty", "-o", dest, "--report", report)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"metrics\": {")
	assert.FileExists(t, report)
}

func TestCacheShowAndClear(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, classCSV, "analyze")
	require.NoError(t, err)

	out, err := env.run(t, "", "cache", "show")
	require.NoError(t, err)
	assert.Equal(t, classCSV, out)

	_, err = env.run(t, "", "cache", "clear")
	require.NoError(t, err)

	_, err = env.run(t, "", "cache", "show")
	assert.ErrorIs(t, err, studentperf.ErrNoData)
}

func TestInvalidCacheBackend(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, classCSV, "analyze", "--cache-backend", "s3")
	assert.Error(t, err)
}
