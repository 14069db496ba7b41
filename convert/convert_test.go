package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minios-linux/arb2android/android"
	"github.com/minios-linux/arb2android/arbfile"
)

const bundle = `{
  "@@locale": "pt_BR",
  "@@last_modified": "2024-01-01",
  "hello": "Olá, $name!",
  "@hello": {"description": "Greeting", "parameters": "name"},
  "filesOne": "$n arquivo",
  "filesOther": "$n arquivos",
  "@files": {"description": "File count", "plural": "n"}
}`

func writeBundle(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "app.arb")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRun_WritesFile(t *testing.T) {
	dir := t.TempDir()
	src := writeBundle(t, dir, bundle)
	out := filepath.Join(dir, "res", "values", "strings.xml")

	res, err := Run(Options{Source: src, Output: out})
	require.NoError(t, err)
	assert.Equal(t, out, res.Destination)
	assert.Equal(t, 2, res.Resources)
	assert.Equal(t, "pt_BR", res.Locale)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, res.Bytes, len(data))
	assert.Contains(t, string(data), ">Olá, %1$s!</string>")
	assert.Contains(t, string(data), ">%d arquivos</item>")
}

func TestRun_DryRunMatchesFile(t *testing.T) {
	dir := t.TempDir()
	src := writeBundle(t, dir, bundle)
	out := filepath.Join(dir, "strings.xml")

	_, err := Run(Options{Source: src, Output: out})
	require.NoError(t, err)
	written, err := os.ReadFile(out)
	require.NoError(t, err)

	var stdout bytes.Buffer
	dryOut := filepath.Join(dir, "dry", "strings.xml")
	res, err := Run(Options{Source: src, Output: dryOut, DryRun: true, Stdout: &stdout})
	require.NoError(t, err)
	assert.Equal(t, StdoutDestination, res.Destination)
	assert.Equal(t, string(written), stdout.String())

	_, err = os.Stat(dryOut)
	assert.True(t, errors.Is(err, os.ErrNotExist), "dry run must not create %s", dryOut)
}

func TestRun_ResDirFromLocale(t *testing.T) {
	dir := t.TempDir()
	src := writeBundle(t, dir, bundle)
	resDir := filepath.Join(dir, "res")

	res, err := Run(Options{Source: src, ResDir: resDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resDir, "values-pt-rBR", "strings.xml"), res.Destination)
	assert.FileExists(t, res.Destination)

	res, err = Run(Options{Source: src, ResDir: resDir, DefaultLocale: "pt-BR"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resDir, "values", "strings.xml"), res.Destination)
}

func TestRun_DefectAbortsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	src := writeBundle(t, dir, `{
	  "ok": "fine", "@ok": {"description": "ok"},
	  "@ghost": {"description": "no value key"}
	}`)
	out := filepath.Join(dir, "out", "strings.xml")

	_, err := Run(Options{Source: src, Output: out})
	assert.ErrorIs(t, err, android.ErrMissingValue)
	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no file expected after failure")

	var stdout bytes.Buffer
	_, err = Run(Options{Source: src, DryRun: true, Stdout: &stdout})
	assert.ErrorIs(t, err, android.ErrMissingValue)
	assert.Zero(t, stdout.Len(), "no partial preview expected")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(Options{Source: filepath.Join(dir, "missing.arb"), DryRun: true, Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, os.ErrNotExist)

	src := writeBundle(t, dir, `{"broken": `)
	_, err = Run(Options{Source: src, DryRun: true, Stdout: &bytes.Buffer{}})
	assert.ErrorIs(t, err, arbfile.ErrMalformed)
}

func TestDestination(t *testing.T) {
	got, err := Destination(Options{}, "ru")
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, got)

	got, err = Destination(Options{Output: "x.xml", ResDir: "res"}, "ru")
	require.NoError(t, err)
	assert.Equal(t, "x.xml", got)

	got, err = Destination(Options{ResDir: "res"}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("res", "values", "strings.xml"), got)
}
