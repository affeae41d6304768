package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTargetCSV = `Regional targets,,,
,,,
Updated,,,
No,SKU,TTFROS004 - TikTok Electric,SPFR01 - Shopee Official
,Target,900,800
1,ABC123,150,n/a
2,XYZ999,0,"1,200"
`

const cliGradeCSV = `SKU,Grade
ABC123,A
`

func writeFixtures(t *testing.T, target string) (dir, mainPath, gradePath string) {
	t.Helper()

	dir = t.TempDir()
	mainPath = filepath.Join(dir, "targets.csv")
	gradePath = filepath.Join(dir, "grades.csv")
	require.NoError(t, os.WriteFile(mainPath, []byte(target), 0o644))
	require.NoError(t, os.WriteFile(gradePath, []byte(cliGradeCSV), 0o644))
	return dir, mainPath, gradePath
}

func TestRun_WritesCSV(t *testing.T) {
	t.Parallel()

	dir, mainPath, gradePath := writeFixtures(t, cliTargetCSV)
	out := filepath.Join(dir, "out.csv")

	a := &app{cfg: testConfig(), noHistory: true}
	f := &runFlags{
		options:   optionFlags{month: "2026-01"},
		mainPath:  mainPath,
		gradePath: gradePath,
		out:       out,
		format:    "csv",
		headers:   "plain",
		preview:   0,
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, a.run(context.Background(), f, &stdout, &stderr))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "Month,Brand,Platform,Store,SKU,Product Grade,Monthly Goal\n" +
		"2026-01-01,freemir,TikTok,TTFROS004,ABC123,A,150\n" +
		"2026-01-01,freemir,Shopee,SPFR01,XYZ999,N/A,1200\n"
	assert.Equal(t, want, string(data))
	assert.Contains(t, stdout.String(), "2 rows written")
}

func TestRun_Stdout(t *testing.T) {
	t.Parallel()

	_, mainPath, gradePath := writeFixtures(t, cliTargetCSV)

	a := &app{cfg: testConfig(), noHistory: true}
	f := &runFlags{
		options:     optionFlags{month: "2026-01-01"},
		mainPath:    mainPath,
		gradePath:   gradePath,
		out:         "-",
		format:      "csv",
		headers:     "bilingual",
		diagnostics: true,
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, a.run(context.Background(), f, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "月份/Month")
	assert.Contains(t, stdout.String(), "TikTok,TTFROS004,ABC123,A,150")
	assert.Contains(t, stderr.String(), "noise_row")
	assert.Contains(t, stderr.String(), "SKU column B, 1 graded SKUs")
	assert.Contains(t, stderr.String(), "C: store TTFROS004 on TikTok")
}

func TestRun_PositionalDiagnosticsNameBadHeaders(t *testing.T) {
	t.Parallel()

	_, mainPath, gradePath := writeFixtures(t, cliTargetCSV)

	a := &app{cfg: testConfig(), noHistory: true}
	f := &runFlags{
		options:     optionFlags{month: "2026-01-01", colRange: "A:D"},
		mainPath:    mainPath,
		gradePath:   gradePath,
		out:         "-",
		format:      "csv",
		headers:     "plain",
		diagnostics: true,
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, a.run(context.Background(), f, &stdout, &stderr))

	assert.Contains(t, stderr.String(), `A: "No" is not a store header, cells skipped`)
	assert.Contains(t, stderr.String(), "D: store SPFR01 on Shopee")
	assert.Contains(t, stdout.String(), "TikTok,TTFROS004,ABC123,A,150")
}

func TestRun_EmptyResultWritesNothing(t *testing.T) {
	t.Parallel()

	empty := `a,,,
,,,
,,,
No,SKU,TTFROS004 - TikTok Electric,SPFR01 - Shopee Official
1,ABC123,0,-
`
	dir, mainPath, gradePath := writeFixtures(t, empty)
	out := filepath.Join(dir, "out.csv")

	a := &app{cfg: testConfig(), noHistory: true}
	f := &runFlags{
		options:   optionFlags{},
		mainPath:  mainPath,
		gradePath: gradePath,
		out:       out,
		format:    "csv",
		headers:   "plain",
	}

	var stdout, stderr bytes.Buffer
	require.NoError(t, a.run(context.Background(), f, &stdout, &stderr))

	assert.NoFileExists(t, out)
	assert.Contains(t, stderr.String(), "No valid data found")
}

func TestRun_MissingFile(t *testing.T) {
	t.Parallel()

	a := &app{cfg: testConfig(), noHistory: true}
	f := &runFlags{
		options:   optionFlags{},
		mainPath:  filepath.Join(t.TempDir(), "missing.csv"),
		gradePath: filepath.Join(t.TempDir(), "missing.csv"),
		format:    "csv",
		headers:   "plain",
	}

	var stdout, stderr bytes.Buffer
	assert.Error(t, a.run(context.Background(), f, &stdout, &stderr))
}
